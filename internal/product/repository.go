package product

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

// Repository provides access to product rows. List and ListByCategory return
// newest first, the storefront's default ordering.
type Repository interface {
	List() ([]Product, error)
	ListByCategory(slug string) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	// CountByCategory and RelinkCategory back the category rename policies.
	CountByCategory(slug string) (int, error)
	RelinkCategory(oldSlug, newSlug string) (int, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
// Rows are kept newest first to mirror the Postgres ordering.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) ListByCategory(slug string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.Category == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	// newest first
	r.storage = append([]Product{p}, r.storage...)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			p.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) CountByCategory(slug string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.storage {
		if p.Category == slug {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) RelinkCategory(oldSlug, newSlug string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for i := range r.storage {
		if r.storage[i].Category == oldSlug {
			r.storage[i].Category = newSlug
			n++
		}
	}
	return n, nil
}
