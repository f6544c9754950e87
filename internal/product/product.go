package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product maps to the `products` table. JSON tags follow the snake_case
// convention used across the storefront API.
//
// Category holds a copy of a category slug, not a foreign key. The value is
// written once and never touched when the referenced category renames or
// disappears (unless the cascade rename policy is active); the admin overview
// segregates products whose slug no longer matches any category.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}
