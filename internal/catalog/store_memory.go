package catalog

import (
	"context"
	"sync"
)

// MemStore keeps products in a slice. Ordering is insertion order and is
// never re-sorted.
type MemStore struct {
	mu       sync.RWMutex
	items    []Product
	strategy IDStrategy
}

func NewMemStore(seed []Product, strategy IDStrategy) *MemStore {
	if strategy == "" {
		strategy = IDMaxPlusOne
	}

	items := make([]Product, 0, len(seed))
	for _, p := range seed {
		items = append(items, p.clone())
	}
	return &MemStore{items: items, strategy: strategy}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.items))
	for i, p := range s.items {
		out[i] = p.clone()
	}
	return out, nil
}

func (s *MemStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, &NotFoundError{ID: id}
	}
	return s.items[i].clone(), nil
}

func (s *MemStore) Create(ctx context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.clone()
	p.ID = s.nextID()
	s.items = append(s.items, p)
	return p.clone(), nil
}

func (s *MemStore) Update(ctx context.Context, id int, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, &NotFoundError{ID: id}
	}

	p = p.clone()
	p.ID = id
	s.items[i] = p
	return p.clone(), nil
}

func (s *MemStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// indexOf returns the first position holding id, or -1.
func (s *MemStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemStore) nextID() int {
	if s.strategy == IDLength {
		return len(s.items) + 1
	}

	maxID := 0
	for _, p := range s.items {
		maxID = max(maxID, p.ID)
	}
	return maxID + 1
}
