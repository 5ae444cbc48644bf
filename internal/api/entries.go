package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kampki/lifeofki/backend/internal/middleware"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
)

type EntryHandler struct {
	entries   *service.EntryService
	nutrition *service.NutritionService
}

func NewEntryHandler(entries *service.EntryService, nutrition *service.NutritionService) *EntryHandler {
	return &EntryHandler{
		entries:   entries,
		nutrition: nutrition,
	}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.GET("", h.ListEntries)
		entries.GET("/:date", h.GetEntry)
		entries.PUT("/:date", h.SaveEntry)
		entries.DELETE("/:date", h.DeleteEntry)
		entries.GET("/:date/nutrition", h.ListNutrition)
		entries.POST("/:date/nutrition", h.AddNutrition)
	}
	nutrition := router.Group("/nutrition")
	{
		nutrition.PUT("/:id", h.UpdateNutrition)
		nutrition.DELETE("/:id", h.DeleteNutrition)
	}
}

// ListEntries returns entries between from and to, defaulting to the last 30 days
func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	to := c.DefaultQuery("to", time.Now().Format(service.DateLayout))
	from := c.DefaultQuery("from", time.Now().AddDate(0, 0, -30).Format(service.DateLayout))

	entries, err := h.entries.List(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetEntry returns the entry for one date; an absent entry is a 404, which the
// calendar treats as an empty day rather than a failure
func (h *EntryHandler) GetEntry(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entry, err := h.entries.GetByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no entry for this date"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// SaveEntry is the direct upsert for one date, bypassing the wizard
func (h *EntryHandler) SaveEntry(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input types.EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entries.Save(c.Request.Context(), userID, c.Param("date"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entry, err := h.entries.GetByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no entry for this date"})
		return
	}

	if err := h.entries.Delete(c.Request.Context(), userID, entry.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *EntryHandler) ListNutrition(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entry, err := h.entries.GetByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no entry for this date"})
		return
	}

	items, err := h.nutrition.List(c.Request.Context(), userID, entry.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nutrition_entries": items})
}

// AddNutrition creates a nutrition sub-entry under the date's journal entry.
// The parent must already exist; the wizard guarantees that by saving the
// entry before the nutrition step is reachable.
func (h *EntryHandler) AddNutrition(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input types.NutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entries.GetByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no entry for this date, save the daily entry first"})
		return
	}

	item, err := h.nutrition.Add(c.Request.Context(), userID, entry.ID, input.TimeConsumed, input.FoodDescription)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *EntryHandler) UpdateNutrition(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nutrition entry id"})
		return
	}

	var input types.NutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.nutrition.Update(c.Request.Context(), userID, id, input.TimeConsumed, input.FoodDescription)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *EntryHandler) DeleteNutrition(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nutrition entry id"})
		return
	}

	if err := h.nutrition.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
