package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kampki/lifeofki/backend/internal/middleware"
	"github.com/kampki/lifeofki/backend/internal/service"
)

const defaultAnalyticsWindow = 30

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	entries   *service.EntryService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, entries *service.EntryService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, entries: entries}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics", h.GetAnalytics)
	router.GET("/dashboard/stats", h.GetDashboardStats)
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	days := defaultAnalyticsWindow
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a number"})
			return
		}
		days = parsed
	}

	result, err := h.analytics.Analytics(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"analytics": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": result})
}

// GetDashboardStats returns the summary card data for the home screen:
// 7-day stats, the current streak, and whether today has an entry yet.
func (h *AnalyticsHandler) GetDashboardStats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx := c.Request.Context()

	stats, err := h.analytics.Stats(ctx, userID, 7)
	if err != nil {
		respondError(c, err)
		return
	}

	streak, err := h.analytics.CurrentStreak(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	today := time.Now().Format(service.DateLayout)
	entry, err := h.entries.GetByDate(ctx, userID, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":         stats,
		"currentStreak": streak,
		"todayLogged":   entry != nil,
	})
}
