package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/types"
)

const (
	DefaultWeekStartDay = 1 // Monday
	DefaultTheme        = "light"
)

var validThemes = map[string]bool{
	"light":  true,
	"dark":   true,
	"system": true,
}

// PreferencesService owns the per-user settings row, created lazily with
// defaults the first time it is read
type PreferencesService struct {
	db *gorm.DB
}

func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// Get returns the user's preferences, creating the defaults row when absent
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.UserPreferences{
			UserID:       userID,
			WeekStartDay: DefaultWeekStartDay,
			Theme:        DefaultTheme,
		}
		if err := s.db.WithContext(ctx).Create(&prefs).Error; err != nil {
			return nil, fmt.Errorf("creating default preferences: %w", err)
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching preferences: %w", err)
	}
	return &prefs, nil
}

// Update applies the non-nil fields of the update request
func (s *PreferencesService) Update(ctx context.Context, userID uuid.UUID, update types.PreferencesUpdate) (*models.UserPreferences, error) {
	verrs := types.ValidationErrors{}
	if update.WeekStartDay != nil && (*update.WeekStartDay < 0 || *update.WeekStartDay > 6) {
		verrs.Add("week_start_day", "week start day must be between 0 and 6")
	}
	if update.Theme != nil && !validThemes[*update.Theme] {
		verrs.Add("theme", "theme must be one of light, dark, system")
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.WeekStartDay != nil {
		prefs.WeekStartDay = *update.WeekStartDay
	}
	if update.Theme != nil {
		prefs.Theme = *update.Theme
	}

	if err := s.db.WithContext(ctx).Save(prefs).Error; err != nil {
		return nil, fmt.Errorf("updating preferences: %w", err)
	}
	return prefs, nil
}
