package product

import (
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

// upsertRequest carries form or JSON fields for create and update. Price
// arrives as a string (the admin form submits text) and is parsed before any
// write; see ParsePrice. Updates are full replacements, mirroring the admin
// form: a payload with neither a file nor image_url clears the stored image,
// so clients must resend image_url to keep it.
type upsertRequest struct {
	Name        string `json:"name" form:"name"`
	Price       string `json:"price" form:"price"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

func NewHandler(service *Service, store storage.Store, log *zap.Logger) *Handler {
	return &Handler{service: service, store: store, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Put("/api/v1/product/:id", h.updateProduct)
	app.Delete("/api/v1/product/:id", h.deleteProduct)
}

// listProducts returns the whole catalog newest first, or only one category's
// products when ?category=<slug> is present (the storefront category page).
func (h *Handler) listProducts(c *fiber.Ctx) error {
	var (
		products []Product
		err      error
	)
	if slug := c.Query("category"); slug != "" {
		products, err = h.service.ListByCategory(slug)
	} else {
		products, err = h.service.List()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p, uploadedPath, status, err := h.buildProduct(c)
	if err != nil {
		return respondError(c, status, err)
	}

	created, err := h.service.Create(p)
	if err != nil {
		h.compensateUpload(uploadedPath)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, uploadedPath, status, err := h.buildProduct(c)
	if err != nil {
		return respondError(c, status, err)
	}

	updated, err := h.service.Update(id, p)
	if err != nil {
		h.compensateUpload(uploadedPath)
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).SendString("Product not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.SendString("Product deleted")
}

// buildProduct parses and validates the upsert payload, then uploads the
// attached image if there is one. Validation failures never reach storage;
// an upload failure aborts before the row write.
func (h *Handler) buildProduct(c *fiber.Ctx) (p Product, uploadedPath string, status int, err error) {
	req := new(upsertRequest)
	if err := c.BodyParser(req); err != nil {
		return Product{}, "", fiber.StatusBadRequest, err
	}

	ves := map[string]string{}
	if req.Name == "" {
		ves["name"] = "name is required"
	}
	if req.Category == "" {
		ves["category"] = "Please select a category."
	}
	price, perr := ParsePrice(req.Price)
	if perr != nil {
		ves["price"] = perr.Error()
	}
	if len(ves) > 0 {
		return Product{}, "", fiber.StatusBadRequest, &validationError{ves}
	}

	imageURL := req.ImageURL
	if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return Product{}, "", fiber.StatusBadGateway, err
		}
		defer f.Close()
		blob, err := io.ReadAll(f)
		if err != nil {
			return Product{}, "", fiber.StatusBadGateway, err
		}

		objectPath := storage.ObjectPath("products", file.Filename)
		if err := h.store.Upload(objectPath, blob); err != nil {
			return Product{}, "", fiber.StatusBadGateway, err
		}
		imageURL = h.store.PublicURL(objectPath)
		uploadedPath = objectPath
	}

	p = Product{
		Name:     req.Name,
		Price:    price,
		Category: req.Category,
	}
	if req.Description != "" {
		p.Description = &req.Description
	}
	if imageURL != "" {
		p.ImageURL = &imageURL
	}
	return p, uploadedPath, 0, nil
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

type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string { return "validation failed" }

func respondError(c *fiber.Ctx, status int, err error) error {
	if ve, ok := err.(*validationError); ok {
		return c.Status(status).JSON(fiber.Map{"errors": ve.fields})
	}
	if status == fiber.StatusBadGateway {
		return c.Status(status).JSON(fiber.Map{"message": "image upload failed: " + err.Error()})
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}
