package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFocusTitleEmpty   = errors.New("focus title cannot be empty")
	ErrFocusTitleTooLong = errors.New("focus title is too long (max 100 chars)")
	ErrFocusDescTooLong  = errors.New("focus description is too long (max 500 chars)")
	ErrInvalidFocus      = errors.New("invalid focus data")
)

const (
	MaxTitleLen = 100
	MaxDescLen  = 500

	XPPerCompletion = 25
	XPPerLevel      = 100
)

type Todo struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	IsCompleted bool   `json:"is_completed" db:"is_completed"`
}

// Focus is one tracked habit together with its raw completion history.
// CompletionDates may contain several instants on the same calendar day.
type Focus struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Weakness        string      `json:"weakness,omitempty"`
	SortOrder       int         `json:"sort_order"`
	Todos           []Todo      `json:"todos"`
	CompletionDates []time.Time `json:"completion_dates"`
	CreatedAt       time.Time   `json:"created_at"`
}

func NewFocus(userID, title, description string) (*Focus, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return nil, ErrFocusTitleEmpty
	}
	if len(trimmedTitle) > MaxTitleLen {
		return nil, ErrFocusTitleTooLong
	}

	cleanDesc := strings.TrimSpace(description)
	if len(cleanDesc) > MaxDescLen {
		return nil, ErrFocusDescTooLong
	}

	return &Focus{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           trimmedTitle,
		Description:     cleanDesc,
		Todos:           []Todo{},
		CompletionDates: []time.Time{},
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func NewTodo(title string) Todo {
	return Todo{
		ID:    uuid.NewString(),
		Title: strings.TrimSpace(title),
	}
}

func (f *Focus) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("focus id is required")
	}
	if strings.TrimSpace(f.Title) == "" {
		return ErrFocusTitleEmpty
	}
	return nil
}

// LastCompletion returns the most recent completion instant, or nil when the
// focus has never been completed.
func (f *Focus) LastCompletion() *time.Time {
	if len(f.CompletionDates) == 0 {
		return nil
	}
	last := f.CompletionDates[0]
	for _, d := range f.CompletionDates[1:] {
		if d.After(last) {
			last = d
		}
	}
	return &last
}

// TodoProgress is the fraction of completed todos, 0 when the focus has none.
func (f *Focus) TodoProgress() float64 {
	if len(f.Todos) == 0 {
		return 0
	}
	done := 0
	for _, t := range f.Todos {
		if t.IsCompleted {
			done++
		}
	}
	return float64(done) / float64(len(f.Todos))
}

// Clone returns a deep copy so callers can hand a snapshot to the engine
// without sharing slices with a live store.
func (f *Focus) Clone() *Focus {
	c := *f
	c.Todos = append([]Todo(nil), f.Todos...)
	c.CompletionDates = append([]time.Time(nil), f.CompletionDates...)
	return &c
}

// LevelForXP is 1 + floor(xp / XPPerLevel); negative XP still yields level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return 1 + xp/XPPerLevel
}
