package contact

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	repo Repository
}

type submitRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Message   string `json:"message" form:"message"`
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/contact", h.submit)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/contact", h.list)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	req := new(submitRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if ves := validateSubmission(req); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.repo.Create(Submission{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) list(c *fiber.Ctx) error {
	submissions, err := h.repo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(submissions)
}

func validateSubmission(req *submitRequest) map[string]string {
	errs := map[string]string{}
	if req.FirstName == "" {
		errs["first_name"] = "first_name is required"
	}
	if req.LastName == "" {
		errs["last_name"] = "last_name is required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		errs["email"] = "a valid email is required"
	}
	if req.Message == "" {
		errs["message"] = "message is required"
	}
	return errs
}
