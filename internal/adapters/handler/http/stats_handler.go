package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/fokus-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/fokus-engine/internal/core/domain"
	"github.com/comitanigiacomo/fokus-engine/internal/core/services"
)

type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type RefreshQueue interface {
	Enqueue(userID string) bool
}

type StatsHandler struct {
	svc         *services.StatsService
	invalidator SnapshotInvalidator
	queue       RefreshQueue
	logger      *slog.Logger
}

func NewStatsHandler(svc *services.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// WithRefresh enables snapshot refreshes. Either argument may be nil.
func (h *StatsHandler) WithRefresh(invalidator SnapshotInvalidator, queue RefreshQueue) *StatsHandler {
	h.invalidator = invalidator
	h.queue = queue
	return h
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/focuses/:id", h.GetFocusStatistics)
		stats.GET("/global", h.GetGlobalStatistics)
		stats.GET("/insights", h.GetDeepInsights)
		stats.POST("/refresh", h.RefreshSnapshot)
	}
	r.GET("/achievements", h.GetAchievements)
}

func (h *StatsHandler) GetFocusStatistics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.FocusStatistics(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetGlobalStatistics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.GlobalStatistics(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetDeepInsights(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	insights, err := h.svc.DeepInsights(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

func (h *StatsHandler) GetAchievements(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var rarity *domain.Rarity
	if raw := c.Query("rarity"); raw != "" {
		parsed, err := domain.ParseRarity(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rarity, expected common, rare or legendary"})
			return
		}
		rarity = &parsed
	}

	report, err := h.svc.Achievements(c.Request.Context(), userID, rarity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *StatsHandler) RefreshSnapshot(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if h.invalidator != nil {
		h.invalidator.Invalidate(c.Request.Context(), userID)
	}

	if h.queue != nil && !h.queue.Enqueue(userID) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh queue is full, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh scheduled"})
}

func (h *StatsHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrInvalidFocus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid focus id"})

	case errors.Is(err, domain.ErrFocusNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "focus not found"})

	case errors.Is(err, domain.ErrSnapshotUnavailable):
		h.logger.Warn("snapshot unavailable", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "statistics temporarily unavailable"})

	default:
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
