package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampki/lifeofki/backend/internal/middleware"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
)

type PreferencesHandler struct {
	preferences *service.PreferencesService
}

func NewPreferencesHandler(preferences *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferences: preferences}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/preferences", h.GetPreferences)
	router.PUT("/preferences", h.UpdatePreferences)
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	prefs, err := h.preferences.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var update types.PreferencesUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.preferences.Update(c.Request.Context(), userID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}
