package blogs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tecknovice/blogapi/internal/errs"
	"github.com/tecknovice/blogapi/internal/models"
	"github.com/tecknovice/blogapi/internal/policy"
)

type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	blogs  map[int64]models.Blog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, blogs: make(map[int64]models.Blog)}
}

func (s *MemoryStore) Create(_ context.Context, b *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	b.ID = s.nextID
	b.CreatedAt = now
	b.UpdatedAt = now
	s.nextID++
	s.blogs[b.ID] = *b
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &b, nil
}

func (s *MemoryStore) List(_ context.Context, scope policy.Scope) ([]models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Blog{}
	for _, b := range s.blogs {
		if scope.Allows(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, b *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[b.ID]; !ok {
		return errs.ErrNotFound
	}
	b.UpdatedAt = time.Now()
	s.blogs[b.ID] = *b
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.blogs, id)
	return nil
}

func (s *MemoryStore) DeleteByOwner(_ context.Context, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, b := range s.blogs {
		if b.UserID == ownerID {
			delete(s.blogs, id)
		}
	}
	return nil
}
