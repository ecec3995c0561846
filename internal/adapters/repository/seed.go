package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

// Seed is the JSON fixture accepted by LoadSeed.
type Seed struct {
	Users []SeedUser `json:"users"`
}

// SeedUser holds one user's focuses. When TotalXP is omitted it is derived
// from the completions at domain.XPPerCompletion each.
type SeedUser struct {
	UserID  string      `json:"user_id"`
	TotalXP *int        `json:"total_xp,omitempty"`
	Focuses []SeedFocus `json:"focuses"`
}

type SeedFocus struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Weakness    string      `json:"weakness"`
	Todos       []string    `json:"todos"`
	Done        []string    `json:"done_todos"`
	Completions []time.Time `json:"completions"`
}

// LoadSeedFile reads a Seed from path into store.
func LoadSeedFile(store *InMemoryFocusRepository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("repository: read seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("repository: decode seed %s: %w", path, err)
	}
	return LoadSeed(store, seed)
}

// LoadSeed saves every seeded focus and the users' XP, returning the number
// of focuses stored.
func LoadSeed(store *InMemoryFocusRepository, seed Seed) (int, error) {
	count := 0
	for _, u := range seed.Users {
		if u.UserID == "" {
			return count, errors.New("repository: seed user without user_id")
		}

		completions := 0
		for i, sf := range u.Focuses {
			f, err := domain.NewFocus(u.UserID, sf.Title, sf.Description)
			if err != nil {
				return count, fmt.Errorf("repository: seed focus %d of %s: %w", i, u.UserID, err)
			}
			f.Weakness = sf.Weakness
			f.SortOrder = i + 1

			done := make(map[string]bool, len(sf.Done))
			for _, title := range sf.Done {
				done[title] = true
			}
			for _, title := range sf.Todos {
				todo := domain.NewTodo(title)
				todo.IsCompleted = done[title]
				f.Todos = append(f.Todos, todo)
			}

			f.CompletionDates = append(f.CompletionDates, sf.Completions...)
			completions += len(sf.Completions)

			if err := store.Save(f); err != nil {
				return count, fmt.Errorf("repository: seed focus %q: %w", f.Title, err)
			}
			count++
		}

		xp := completions * domain.XPPerCompletion
		if u.TotalXP != nil {
			xp = *u.TotalXP
		}
		store.SetTotalXP(u.UserID, xp)
	}
	return count, nil
}
