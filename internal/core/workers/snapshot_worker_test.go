package workers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

type recordingLoader struct {
	mu    sync.Mutex
	calls []string
	err   error
	hit   chan string
}

func (l *recordingLoader) ListByUserID(ctx context.Context, userID string) ([]*domain.Focus, error) {
	l.mu.Lock()
	l.calls = append(l.calls, userID)
	l.mu.Unlock()
	if l.hit != nil {
		l.hit <- userID
	}
	if l.err != nil {
		return nil, l.err
	}
	return []*domain.Focus{{ID: "f1", CompletionDates: []time.Time{time.Now()}}}, nil
}

func newTestWorker(loader SnapshotLoader) *SnapshotWorker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSnapshotWorker(loader, analytics.NewCalendar(time.UTC, time.Monday), logger)
}

func TestSnapshotWorker_ProcessesJobs(t *testing.T) {
	loader := &recordingLoader{hit: make(chan string, 2)}
	w := newTestWorker(loader)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.True(t, w.Enqueue("user-1"))
	require.True(t, w.Enqueue("user-2"))

	for _, want := range []string{"user-1", "user-2"} {
		select {
		case got := <-loader.hit:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	cancel()
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestSnapshotWorker_LoaderErrorDoesNotStopWorker(t *testing.T) {
	loader := &recordingLoader{hit: make(chan string, 2), err: errors.New("db down")}
	w := newTestWorker(loader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	w.Enqueue("user-1")
	w.Enqueue("user-1")

	for i := 0; i < 2; i++ {
		select {
		case <-loader.hit:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped processing after a failed job")
		}
	}
}

func TestSnapshotWorker_DropsWhenQueueFull(t *testing.T) {
	w := newTestWorker(&recordingLoader{})

	for i := 0; i < queueSize; i++ {
		require.True(t, w.Enqueue("user"))
	}

	assert.False(t, w.Enqueue("overflow"))
}
