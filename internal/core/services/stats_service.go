package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/fokus-engine/internal/core/achievements"
	"github.com/comitanigiacomo/fokus-engine/internal/core/analytics"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
)

type StatsService struct {
	focusRepo    domain.FocusRepository
	progressRepo domain.ProgressRepository
	engine       *analytics.Engine
	now          func() time.Time
	logger       *slog.Logger
}

func NewStatsService(
	focusRepo domain.FocusRepository,
	progressRepo domain.ProgressRepository,
	engine *analytics.Engine,
	logger *slog.Logger,
) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{
		focusRepo:    focusRepo,
		progressRepo: progressRepo,
		engine:       engine,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock replaces the source of "now". Tests use it to pin the date.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

func (s *StatsService) FocusStatistics(ctx context.Context, userID, focusID string) (*domain.FocusStatistics, error) {
	if focusID == "" {
		return nil, domain.ErrInvalidFocus
	}

	focus, err := s.focusRepo.GetByID(ctx, userID, focusID)
	if err != nil {
		return nil, err
	}

	stats := s.engine.FocusStatistics(focus, s.now())
	return &stats, nil
}

func (s *StatsService) GlobalStatistics(ctx context.Context, userID string) (*domain.GlobalStatistics, error) {
	focuses, totalXP, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := s.engine.GlobalStatistics(focuses, totalXP, s.now())
	return &stats, nil
}

func (s *StatsService) DeepInsights(ctx context.Context, userID string) (*domain.DeepInsights, error) {
	focuses, err := s.focusRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	insights := s.engine.DeepInsights(focuses, s.now())
	return &insights, nil
}

// Achievements evaluates the catalog for the user. A nil rarity returns every
// achievement; the summary always covers the full catalog.
func (s *StatsService) Achievements(ctx context.Context, userID string, rarity *domain.Rarity) (*domain.AchievementReport, error) {
	stats, err := s.GlobalStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := stats.Achievements
	if rarity != nil {
		list = achievements.FilterByRarity(list, *rarity)
	}

	return &domain.AchievementReport{
		Achievements: list,
		Summary:      achievements.Summarize(stats.Achievements),
	}, nil
}

// loadSnapshot fetches focuses and XP concurrently. A user without a progress
// record has 0 XP.
func (s *StatsService) loadSnapshot(ctx context.Context, userID string) ([]*domain.Focus, int, error) {
	var (
		focuses []*domain.Focus
		totalXP int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.focusRepo.ListByUserID(gctx, userID)
		if err != nil {
			return err
		}
		focuses = list
		return nil
	})

	g.Go(func() error {
		xp, err := s.progressRepo.TotalXP(gctx, userID)
		if errors.Is(err, domain.ErrProgressNotFound) {
			s.logger.Debug("no progress recorded, assuming 0 XP", "user_id", userID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("stats service: load progress: %w", err)
		}
		totalXP = xp
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return focuses, totalXP, nil
}
