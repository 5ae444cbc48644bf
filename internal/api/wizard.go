package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampki/lifeofki/backend/internal/middleware"
	"github.com/kampki/lifeofki/backend/internal/types"
	"github.com/kampki/lifeofki/backend/internal/wizard"
)

type WizardHandler struct {
	wizard *wizard.Manager
}

func NewWizardHandler(manager *wizard.Manager) *WizardHandler {
	return &WizardHandler{wizard: manager}
}

func (h *WizardHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/wizard")
	{
		group.POST("", h.StartWizard)
		group.GET("", h.GetWizard)
		group.POST("/next", h.NextStep)
		group.POST("/previous", h.PreviousStep)
		group.POST("/submit", h.SubmitWizard)
		group.DELETE("", h.CancelWizard)
	}
}

// StartWizard opens a wizard session for the date query parameter,
// defaulting to today. It replaces any session already in progress.
func (h *WizardHandler) StartWizard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	session, err := h.wizard.Start(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *WizardHandler) GetWizard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	session, err := h.wizard.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *WizardHandler) NextStep(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var values types.EntryInput
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.wizard.Next(c.Request.Context(), userID, values)
	if err != nil {
		if verrs, ok := err.(types.ValidationErrors); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   verrs.Error(),
				"fields":  map[string]string(verrs),
				"session": sessionResponse(session),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *WizardHandler) PreviousStep(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	session, err := h.wizard.Previous(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *WizardHandler) SubmitWizard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var values types.EntryInput
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.wizard.Submit(c.Request.Context(), userID, values)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *WizardHandler) CancelWizard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.wizard.Cancel(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func sessionResponse(session *wizard.Session) gin.H {
	return gin.H{
		"entry_date":   session.EntryDate,
		"step":         session.Step.String(),
		"step_index":   int(session.Step),
		"values":       session.Values,
		"entry_id":     session.EntryID,
		"limited_mode": session.LimitedMode,
	}
}
