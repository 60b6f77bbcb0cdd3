package memory

import (
	"context"
	"sync"

	"moneytracker/internal/core"
)

// Store keeps transactions in process memory, in insertion order.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewWith seeds the store; seeded records receive fresh IDs.
func NewWith(seed ...core.Transaction) *Store {
	s := New()
	for _, t := range seed {
		_, _ = s.Create(context.Background(), t)
	}
	return s
}

func (s *Store) Create(_ context.Context, t core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items = append(s.items, t)
	return t.ID, nil
}

func (s *Store) Get(_ context.Context, id int64, owner string) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id, owner); i >= 0 {
		return s.items[i], true, nil
	}
	return core.Transaction{}, false, nil
}

func (s *Store) List(_ context.Context, owner string, f core.Filter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Transaction{}
	for _, t := range s.items {
		if t.Owner == owner && f.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) Update(_ context.Context, id int64, owner string, t core.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id, owner)
	if i < 0 {
		return false, nil
	}
	cur := &s.items[i]
	cur.Amount = t.Amount
	cur.Kind = t.Kind
	cur.Category = t.Category
	cur.Date = t.Date
	return true, nil
}

func (s *Store) Delete(_ context.Context, id int64, owner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id, owner)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true, nil
}

// Close is a no-op; the data lives as long as the Store value.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored records across all owners.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(id int64, owner string) int {
	for i, t := range s.items {
		if t.ID == id && t.Owner == owner {
			return i
		}
	}
	return -1
}
