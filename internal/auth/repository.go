package auth

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository provides access to admin accounts.
type Repository interface {
	GetByEmail(email string) (Admin, error)
	Create(a Admin) (Admin, error)
	Count() (int, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Admin
	nextID  int
}

func NewInMemoryRepository(seed []Admin) *InMemoryRepository {
	r := &InMemoryRepository{storage: append([]Admin(nil), seed...), nextID: 1}
	for _, a := range seed {
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) GetByEmail(email string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if a.Email == email {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *InMemoryRepository) Create(a Admin) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.storage), nil
}
