package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

var (
	_ domain.FocusRepository    = (*InMemoryFocusRepository)(nil)
	_ domain.ProgressRepository = (*InMemoryFocusRepository)(nil)
)

// InMemoryFocusRepository keeps snapshots in process memory. Reads return
// clones so callers never share slices with the store.
type InMemoryFocusRepository struct {
	store map[string]*domain.Focus
	xp    map[string]int

	mu sync.RWMutex
}

func NewInMemoryFocusRepository() *InMemoryFocusRepository {
	return &InMemoryFocusRepository{
		store: make(map[string]*domain.Focus),
		xp:    make(map[string]int),
	}
}

func (r *InMemoryFocusRepository) Save(focus *domain.Focus) error {
	if err := focus.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[focus.ID] = focus.Clone()
	return nil
}

func (r *InMemoryFocusRepository) SetTotalXP(userID string, xp int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.xp[userID] = xp
}

func (r *InMemoryFocusRepository) GetByID(ctx context.Context, userID, id string) (*domain.Focus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	focus, ok := r.store[id]
	if !ok || focus.UserID != userID {
		return nil, domain.ErrFocusNotFound
	}
	return focus.Clone(), nil
}

func (r *InMemoryFocusRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Focus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	focuses := make([]*domain.Focus, 0)
	for _, f := range r.store {
		if f.UserID == userID {
			focuses = append(focuses, f.Clone())
		}
	}

	sort.Slice(focuses, func(i, j int) bool {
		if focuses[i].SortOrder != focuses[j].SortOrder {
			return focuses[i].SortOrder < focuses[j].SortOrder
		}
		return focuses[i].CreatedAt.Before(focuses[j].CreatedAt)
	})

	return focuses, nil
}

func (r *InMemoryFocusRepository) TotalXP(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	xp, ok := r.xp[userID]
	if !ok {
		return 0, domain.ErrProgressNotFound
	}
	return xp, nil
}
