package category

import (
	"errors"
	"fmt"

	"github.com/aniverse-shop/aniverse-backend/internal/catalog"
)

// RenamePolicy decides what happens to products still referencing a
// category's old slug when a rename changes the slug. Deleting a category
// never cascades regardless of policy.
type RenamePolicy string

const (
	// PolicyAcceptOrphaning leaves referencing products on the old slug; they
	// surface in the admin overview's Uncategorized bucket. This matches the
	// storefront's historical behavior and is the default.
	PolicyAcceptOrphaning RenamePolicy = "accept-orphaning"
	// PolicyCascade re-points referencing products to the new slug after the
	// category row is written.
	PolicyCascade RenamePolicy = "cascade"
	// PolicyForbid rejects a slug-changing rename while any product still
	// references the old slug.
	PolicyForbid RenamePolicy = "forbid"
)

// ParsePolicy maps a config string onto a RenamePolicy. The empty string
// selects the default.
func ParsePolicy(s string) (RenamePolicy, error) {
	switch RenamePolicy(s) {
	case "":
		return PolicyAcceptOrphaning, nil
	case PolicyAcceptOrphaning, PolicyCascade, PolicyForbid:
		return RenamePolicy(s), nil
	}
	return "", fmt.Errorf("unknown rename policy %q", s)
}

var ErrRenameForbidden = errors.New("category is still referenced by products")

// ErrRelinkFailed marks a cascade rename whose category row write succeeded
// but whose product relink did not. The row, and whatever image URL it
// carries, is already persisted when this error is returned.
var ErrRelinkFailed = errors.New("category renamed but products not relinked")

// ProductRelinker is the slice of the product service the rename policies
// need. A nil relinker downgrades every policy to accept-orphaning.
type ProductRelinker interface {
	CountByCategory(slug string) (int, error)
	RelinkCategory(oldSlug, newSlug string) (int, error)
}

// Service provides business logic for categories: slug derivation on every
// write and the rename policy on slug-changing updates.
type Service struct {
	repo     Repository
	policy   RenamePolicy
	products ProductRelinker
}

func NewService(repo Repository, policy RenamePolicy, products ProductRelinker) *Service {
	if products == nil {
		policy = PolicyAcceptOrphaning
	}
	return &Service{repo: repo, policy: policy, products: products}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

// Create derives the slug from the name. An empty derivation (blank or
// punctuation-only name) is stored as-is.
func (s *Service) Create(c Category) (Category, error) {
	c.Slug = catalog.DeriveSlug(c.Name)
	return s.repo.Create(c)
}

// Update recomputes the slug from the submitted name. When that changes the
// slug, the configured policy runs: forbid checks the reference count before
// writing, cascade relinks referencing products after writing, and
// accept-orphaning does nothing.
func (s *Service) Update(id int, c Category) (Category, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return Category{}, err
	}

	c.Slug = catalog.DeriveSlug(c.Name)
	slugChanged := c.Slug != current.Slug

	if slugChanged && s.policy == PolicyForbid {
		n, err := s.products.CountByCategory(current.Slug)
		if err != nil {
			return Category{}, err
		}
		if n > 0 {
			return Category{}, ErrRenameForbidden
		}
	}

	updated, err := s.repo.Update(id, c)
	if err != nil {
		return Category{}, err
	}

	if slugChanged && s.policy == PolicyCascade {
		if _, err := s.products.RelinkCategory(current.Slug, c.Slug); err != nil {
			// category row already written; products stay on the old slug
			// until the next successful rename or a manual re-point
			return updated, fmt.Errorf("%w: %v", ErrRelinkFailed, err)
		}
	}

	return updated, nil
}

// Delete removes the category only. Products keep the dangling slug and show
// up as Uncategorized in the admin overview.
func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
