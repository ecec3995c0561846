package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"

	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

const undefinedTable = "42P01"

var _ domain.FocusRepository = (*SQLFocusRepository)(nil)

// SQLFocusRepository loads focus snapshots through sqlx. Queries are written
// with "?" placeholders and rebound for the connected driver.
type SQLFocusRepository struct {
	db *sqlx.DB
}

func NewSQLFocusRepository(db *sqlx.DB) *SQLFocusRepository {
	return &SQLFocusRepository{db: db}
}

type focusRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Weakness    string    `db:"weakness"`
	SortOrder   int       `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
}

type todoRow struct {
	ID          string `db:"id"`
	FocusID     string `db:"focus_id"`
	Title       string `db:"title"`
	IsCompleted bool   `db:"is_completed"`
}

type completionRow struct {
	FocusID     string    `db:"focus_id"`
	CompletedAt time.Time `db:"completed_at"`
}

func (r focusRow) toDomain() *domain.Focus {
	return &domain.Focus{
		ID:              r.ID,
		UserID:          r.UserID,
		Title:           r.Title,
		Description:     r.Description,
		Weakness:        r.Weakness,
		SortOrder:       r.SortOrder,
		Todos:           []domain.Todo{},
		CompletionDates: []time.Time{},
		CreatedAt:       r.CreatedAt,
	}
}

func (r *SQLFocusRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Focus, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(`
        SELECT id, user_id, title, description, weakness, sort_order, created_at
        FROM focuses
        WHERE user_id = ?
        ORDER BY sort_order ASC, created_at ASC`)

	var rows []focusRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, normalizeError("list focuses", err)
	}

	focuses := make([]*domain.Focus, 0, len(rows))
	for _, row := range rows {
		focuses = append(focuses, row.toDomain())
	}

	if err := r.attachChildren(ctx, focuses); err != nil {
		return nil, err
	}
	return focuses, nil
}

func (r *SQLFocusRepository) GetByID(ctx context.Context, userID, id string) (*domain.Focus, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(`
        SELECT id, user_id, title, description, weakness, sort_order, created_at
        FROM focuses
        WHERE id = ? AND user_id = ?`)

	var row focusRow
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFocusNotFound
		}
		return nil, normalizeError("get focus", err)
	}

	focus := row.toDomain()
	if err := r.attachChildren(ctx, []*domain.Focus{focus}); err != nil {
		return nil, err
	}
	return focus, nil
}

// attachChildren fills todos and completion histories with one query each.
func (r *SQLFocusRepository) attachChildren(ctx context.Context, focuses []*domain.Focus) error {
	if len(focuses) == 0 {
		return nil
	}

	ids := make([]string, 0, len(focuses))
	byID := make(map[string]*domain.Focus, len(focuses))
	for _, f := range focuses {
		ids = append(ids, f.ID)
		byID[f.ID] = f
	}

	todoQuery, args, err := sqlx.In(`
        SELECT id, focus_id, title, is_completed
        FROM focus_todos
        WHERE focus_id IN (?)
        ORDER BY position ASC`, ids)
	if err != nil {
		return fmt.Errorf("repository: build todo query: %w", err)
	}

	var todos []todoRow
	if err := r.db.SelectContext(ctx, &todos, r.db.Rebind(todoQuery), args...); err != nil {
		return normalizeError("list todos", err)
	}
	for _, t := range todos {
		f := byID[t.FocusID]
		f.Todos = append(f.Todos, domain.Todo{ID: t.ID, Title: t.Title, IsCompleted: t.IsCompleted})
	}

	completionQuery, args, err := sqlx.In(`
        SELECT focus_id, completed_at
        FROM focus_completions
        WHERE focus_id IN (?)
        ORDER BY completed_at ASC`, ids)
	if err != nil {
		return fmt.Errorf("repository: build completion query: %w", err)
	}

	var completions []completionRow
	if err := r.db.SelectContext(ctx, &completions, r.db.Rebind(completionQuery), args...); err != nil {
		return normalizeError("list completions", err)
	}
	for _, c := range completions {
		f := byID[c.FocusID]
		f.CompletionDates = append(f.CompletionDates, c.CompletedAt)
	}

	return nil
}

var _ domain.ProgressRepository = (*SQLProgressRepository)(nil)

type SQLProgressRepository struct {
	db *sqlx.DB
}

func NewSQLProgressRepository(db *sqlx.DB) *SQLProgressRepository {
	return &SQLProgressRepository{db: db}
}

func (r *SQLProgressRepository) TotalXP(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var xp int
	err := r.db.GetContext(ctx, &xp, r.db.Rebind(`SELECT total_xp FROM user_progress WHERE user_id = ?`), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrProgressNotFound
		}
		return 0, normalizeError("get progress", err)
	}
	return xp, nil
}

// normalizeError maps a missing schema to ErrSnapshotUnavailable, whichever
// driver reported it.
func normalizeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == undefinedTable {
		return fmt.Errorf("repository: %s: %w: %v", op, domain.ErrSnapshotUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return fmt.Errorf("repository: %s: %w: %v", op, domain.ErrSnapshotUnavailable, err)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && strings.Contains(liteErr.Error(), "no such table") {
		return fmt.Errorf("repository: %s: %w: %v", op, domain.ErrSnapshotUnavailable, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("repository: %s: %w: %v", op, domain.ErrSnapshotUnavailable, err)
	}

	return fmt.Errorf("repository: %s: %w", op, err)
}
