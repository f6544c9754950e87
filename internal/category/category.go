package category

import "time"

// Category maps to the `categories` table. JSON tags follow the snake_case
// convention used across the storefront API.
//
// Slug is always recomputed from Name on write. Products store a copy of the
// slug string rather than the category id, so renaming a category can strand
// products on the old value; RenamePolicy controls what the service does
// about that. Slugs are not unique: two categories may derive the same slug,
// and nothing here detects or resolves the collision.
type Category struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ImageURL  *string    `json:"image_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
