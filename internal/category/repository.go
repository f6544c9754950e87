package category

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("category not found")

// Repository provides access to category rows. List is ordered by name, the
// order the admin panel and the product form show categories in.
type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	Create(c Category) (Category, error)
	Update(id int, c Category) (Category, error)
	Delete(id int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
	nextID  int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Category, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, c := range seed {
		r.storage = append(r.storage, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id int, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			c.ID = id
			c.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = c
			return c, nil
		}
	}
	return Category{}, ErrNotFound
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
