package domain

import (
	"context"
	"errors"
)

var (
	ErrFocusNotFound       = errors.New("focus not found")
	ErrProgressNotFound    = errors.New("progress not found")
	ErrSnapshotUnavailable = errors.New("focus snapshot unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
)

// FocusRepository is the read side of the focus store. Implementations return
// focuses ordered by sort order so insertion-order tie-breaks stay stable.
type FocusRepository interface {
	// ListByUserID returns every focus of the user with its completion history and todos.
	ListByUserID(ctx context.Context, userID string) ([]*Focus, error)

	// GetByID returns a single focus owned by userID.
	GetByID(ctx context.Context, userID, id string) (*Focus, error)
}

type ProgressRepository interface {
	// TotalXP returns the accumulated experience points of the user, or
	// ErrProgressNotFound when nothing was recorded yet.
	TotalXP(ctx context.Context, userID string) (int, error)
}
