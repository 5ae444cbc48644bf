package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kampki/lifeofki/backend/internal/middleware"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
)

type ReflectionHandler struct {
	reflections *service.ReflectionService
}

func NewReflectionHandler(reflections *service.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflections: reflections}
}

func (h *ReflectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	reflections := router.Group("/reflections")
	{
		reflections.GET("", h.ListReflections)
		reflections.GET("/current", h.GetCurrent)
		reflections.PUT("", h.SaveReflection)
	}
}

// ListReflections returns past reflections that have a personal insight,
// newest week first.
func (h *ReflectionHandler) ListReflections(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		limit = parsed
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must not be negative"})
			return
		}
		offset = parsed
	}

	reflections, err := h.reflections.ListCompleted(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reflections": reflections})
}

func (h *ReflectionHandler) GetCurrent(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reflection, err := h.reflections.Current(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if reflection == nil {
		c.JSON(http.StatusOK, gin.H{"reflection": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reflection": reflection})
}

// SaveReflection upserts the reflection for the week named by the
// week_start query parameter, or the current week when it is absent.
func (h *ReflectionHandler) SaveReflection(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input types.ReflectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reflection, err := h.reflections.SaveForWeek(c.Request.Context(), userID, c.Query("week_start"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reflection)
}
