package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aniverse-shop/aniverse-backend/internal/category"
	"github.com/aniverse-shop/aniverse-backend/internal/product"
)

// Handler serves the admin dashboard's catalog view. It composes the category
// and product services; the partitioning itself is Reconcile.
type Handler struct {
	categories *category.Service
	products   *product.Service
}

func NewHandler(categories *category.Service, products *product.Service) *Handler {
	return &Handler{categories: categories, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/catalog", h.getCatalog)
}

func (h *Handler) getCatalog(c *fiber.Ctx) error {
	categories, err := h.categories.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	products, err := h.products.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(Reconcile(categories, products))
}
