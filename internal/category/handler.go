package category

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aniverse-shop/aniverse-backend/internal/storage"
)

type Handler struct {
	service *Service
	store   storage.Store
	log     *zap.Logger
}

type upsertRequest struct {
	Name     string `json:"name" form:"name"`
	ImageURL string `json:"image_url" form:"image_url"`
}

func NewHandler(service *Service, store storage.Store, log *zap.Logger) *Handler {
	return &Handler{service: service, store: store, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.listCategories)
	app.Get("/api/v1/category/:id", h.getCategory)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/categories", h.createCategory)
	app.Put("/api/v1/category/:id", h.updateCategory)
	app.Delete("/api/v1/category/:id", h.deleteCategory)
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(categories)
}

func (h *Handler) getCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	cat, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Category not found")
	}
	return c.JSON(cat)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	req := new(upsertRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateCategoryPayload(req); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	imageURL, uploadedPath, err := h.resolveImage(c, req.ImageURL)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "image upload failed: " + err.Error()})
	}

	created, err := h.service.Create(Category{Name: req.Name, ImageURL: optional(imageURL)})
	if err != nil {
		h.compensateUpload(uploadedPath)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	req := new(upsertRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := validateCategoryPayload(req); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	imageURL, uploadedPath, err := h.resolveImage(c, req.ImageURL)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "image upload failed: " + err.Error()})
	}

	updated, err := h.service.Update(id, Category{Name: req.Name, ImageURL: optional(imageURL)})
	if err != nil {
		// a failed cascade relink means the row write succeeded and the
		// stored image_url points at the fresh blob, so it must stay
		if errors.Is(err, ErrRelinkFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		h.compensateUpload(uploadedPath)
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).SendString("Category not found")
		case errors.Is(err, ErrRenameForbidden):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Category not found")
	}
	return c.SendString("Category deleted")
}

// resolveImage uploads the attached file, if any, and returns the image URL to
// store plus the object path of a fresh upload (empty when none happened).
// The upload runs before the row write; an upload failure aborts the write.
func (h *Handler) resolveImage(c *fiber.Ctx, fallbackURL string) (imageURL, uploadedPath string, err error) {
	file, ferr := c.FormFile("image")
	if ferr != nil || file == nil {
		return fallbackURL, "", nil
	}

	f, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	blob, err := io.ReadAll(f)
	if err != nil {
		return "", "", err
	}

	objectPath := storage.ObjectPath("categories", file.Filename)
	if err := h.store.Upload(objectPath, blob); err != nil {
		return "", "", err
	}
	return h.store.PublicURL(objectPath), objectPath, nil
}

// compensateUpload deletes a blob whose row write failed. Best effort only.
func (h *Handler) compensateUpload(objectPath string) {
	if objectPath == "" {
		return
	}
	if err := h.store.Remove(objectPath); err != nil {
		h.log.Warn("orphaned upload not removed",
			zap.String("path", objectPath), zap.Error(err))
	}
}

func validateCategoryPayload(req *upsertRequest) map[string]string {
	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	return errs
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
