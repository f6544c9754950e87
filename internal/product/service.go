package product

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("price must be a non-negative number")

// ParsePrice validates a submitted price string. Anything that does not parse
// to a finite non-negative decimal is rejected before a write is attempted;
// the stored value is exactly the parsed one.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price, nil
}

// Service provides business logic for products.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) ListByCategory(slug string) ([]Product, error) {
	return s.repo.ListByCategory(slug)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// CountByCategory reports how many products reference the slug. Used by the
// forbid rename policy.
func (s *Service) CountByCategory(slug string) (int, error) {
	return s.repo.CountByCategory(slug)
}

// RelinkCategory re-points every product on oldSlug to newSlug. Used by the
// cascade rename policy.
func (s *Service) RelinkCategory(oldSlug, newSlug string) (int, error) {
	return s.repo.RelinkCategory(oldSlug, newSlug)
}
