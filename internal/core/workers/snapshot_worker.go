package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

const queueSize = 100

type SnapshotLoader interface {
	ListByUserID(ctx context.Context, userID string) ([]*domain.Focus, error)
}

type RefreshJob struct {
	UserID string
}

// SnapshotWorker reloads user snapshots in the background. With a caching
// loader this repopulates the cache ahead of the next stats request.
type SnapshotWorker struct {
	loader SnapshotLoader
	cal    analytics.Calendar
	now    func() time.Time
	logger *slog.Logger
	jobs   chan RefreshJob
	done   chan struct{}
}

func NewSnapshotWorker(loader SnapshotLoader, cal analytics.Calendar, logger *slog.Logger) *SnapshotWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotWorker{
		loader: loader,
		cal:    cal,
		now:    time.Now,
		logger: logger.With("component", "snapshot_worker"),
		jobs:   make(chan RefreshJob, queueSize),
		done:   make(chan struct{}),
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.logger.Info("snapshot worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("snapshot worker shutting down")
				return
			}
		}
	}()
}

// Done is closed once the worker goroutine has returned.
func (w *SnapshotWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks; it reports false when the queue is full and the job
// was dropped.
func (w *SnapshotWorker) Enqueue(userID string) bool {
	select {
	case w.jobs <- RefreshJob{UserID: userID}:
		return true
	default:
		w.logger.Warn("queue full, dropping refresh job", "user_id", userID)
		return false
	}
}

func (w *SnapshotWorker) processJob(ctx context.Context, job RefreshJob) {
	focuses, err := w.loader.ListByUserID(ctx, job.UserID)
	if err != nil {
		w.logger.Error("refresh failed", "user_id", job.UserID, "error", err)
		return
	}

	streak := analytics.GlobalStreak(w.cal, focuses, w.now())
	w.logger.Info("snapshot refreshed", "user_id", job.UserID, "focuses", len(focuses), "streak", streak)
}
