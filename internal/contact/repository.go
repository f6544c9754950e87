package contact

import "sync"

// Repository stores contact form submissions. List returns newest first.
type Repository interface {
	Create(s Submission) (Submission, error)
	List() ([]Submission, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Submission
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(s Submission) (Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.storage = append([]Submission{s}, r.storage...)
	return s, nil
}

func (r *InMemoryRepository) List() ([]Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Submission, len(r.storage))
	copy(out, r.storage)
	return out, nil
}
