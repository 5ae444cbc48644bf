package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
	"github.com/kampki/lifeofki/backend/internal/wizard"
)

// respondError translates service errors into HTTP responses. Validation
// failures carry the field map; storage failures pass the message through for
// diagnostics.
func respondError(c *gin.Context, err error) {
	var verrs types.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  verrs.Error(),
			"fields": verrs,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrFavoriteNotFound),
		errors.Is(err, wizard.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrFavoriteExists),
		errors.Is(err, wizard.ErrFirstStep),
		errors.Is(err, wizard.ErrLastStep),
		errors.Is(err, wizard.ErrNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
