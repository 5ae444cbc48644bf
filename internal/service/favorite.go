package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/types"
)

var (
	ErrFavoriteExists   = errors.New("favorite already exists")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// maxFavoriteNameLen caps the derived shortcut name
const maxFavoriteNameLen = 50

// FavoriteService owns per-user favorite foods. It also implements the
// auto-favoriting policy: it subscribes to FoodLogged events and promotes a
// food to favorite once it has been logged usageThreshold times within the
// trailing usageWindow.
type FavoriteService struct {
	db             *gorm.DB
	logger         *zap.Logger
	usageThreshold int
	usageWindow    time.Duration
}

func NewFavoriteService(db *gorm.DB, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		db:             db,
		logger:         logger,
		usageThreshold: 3,
		usageWindow:    30 * 24 * time.Hour,
	}
}

// List returns the user's favorites, most used first
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.FavoriteFood, error) {
	var favorites []models.FavoriteFood
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("usage_count DESC").
		Order("name ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	return favorites, nil
}

// Add creates a favorite explicitly. A duplicate description is surfaced as
// ErrFavoriteExists since the user asked for it by hand.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, input types.FavoriteInput) (*models.FavoriteFood, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, types.ValidationErrors{"description": "description is required"}
	}

	name := truncateRunes(strings.TrimSpace(input.Name), maxFavoriteNameLen)
	if name == "" {
		name = FavoriteName(description)
	}

	category := input.Category
	if category == "" && input.DefaultTime != "" {
		category = CategoryForTime(input.DefaultTime)
	}

	favorite := models.FavoriteFood{
		UserID:      userID,
		Name:        name,
		Description: description,
		Category:    category,
		DefaultTime: input.DefaultTime,
	}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("creating favorite: %w", err)
	}
	return &favorite, nil
}

// RecordUsage bumps a favorite's usage counter after a quick-add
func (s *FavoriteService) RecordUsage(ctx context.Context, userID, favoriteID uuid.UUID) (*models.FavoriteFood, error) {
	var favorite models.FavoriteFood
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up favorite: %w", err)
	}

	favorite.UsageCount++
	favorite.LastUsed = time.Now().Format(DateLayout)
	if err := s.db.WithContext(ctx).Save(&favorite).Error; err != nil {
		return nil, fmt.Errorf("updating favorite usage: %w", err)
	}
	return &favorite, nil
}

// Delete removes an owned favorite
func (s *FavoriteService) Delete(ctx context.Context, userID, favoriteID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", favoriteID, userID).
		Delete(&models.FavoriteFood{})
	if result.Error != nil {
		return fmt.Errorf("deleting favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// HandleFoodLogged is the auto-favoriting policy. On exactly the threshold-th
// identical description within the usage window it synthesizes a favorite.
// A favorite that already exists is not an error from the logger's point of
// view, so duplicate-key failures are swallowed.
func (s *FavoriteService) HandleFoodLogged(ctx context.Context, event FoodLogged) {
	count, err := s.usageCount(ctx, event.UserID, event.FoodDescription)
	if err != nil {
		s.logger.Warn("food usage count failed",
			zap.String("user_id", event.UserID.String()),
			zap.Error(err),
		)
		return
	}
	if count != int64(s.usageThreshold) {
		return
	}

	favorite := models.FavoriteFood{
		UserID:      event.UserID,
		Name:        FavoriteName(event.FoodDescription),
		Description: strings.TrimSpace(event.FoodDescription),
		Category:    CategoryForTime(event.TimeConsumed),
		DefaultTime: event.TimeConsumed,
		UsageCount:  s.usageThreshold,
		LastUsed:    time.Now().Format(DateLayout),
	}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if !isDuplicateErr(err) {
			s.logger.Warn("auto-favorite failed",
				zap.String("user_id", event.UserID.String()),
				zap.Error(err),
			)
		}
		return
	}

	s.logger.Info("auto-created favorite",
		zap.String("user_id", event.UserID.String()),
		zap.String("name", favorite.Name),
	)
}

// usageCount counts the user's nutrition entries with an identical description
// within the trailing usage window, including the row just created
func (s *FavoriteService) usageCount(ctx context.Context, userID uuid.UUID, description string) (int64, error) {
	since := time.Now().Add(-s.usageWindow)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.NutritionEntry{}).
		Joins("JOIN journal_entries ON journal_entries.id = nutrition_entries.journal_entry_id").
		Where("journal_entries.user_id = ?", userID).
		Where("nutrition_entries.food_description = ?", description).
		Where("nutrition_entries.created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// FavoriteName derives the shortcut name from the first line of a description
func FavoriteName(description string) string {
	line := strings.TrimSpace(description)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return truncateRunes(line, maxFavoriteNameLen)
}

// truncateRunes caps a string at max characters without splitting a rune
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// CategoryForTime infers a food category from the hour of day it was consumed
func CategoryForTime(clock string) string {
	minutes, err := parseClock(clock)
	if err != nil {
		return models.CategoryOther
	}

	switch hour := minutes / 60; {
	case hour >= 5 && hour < 11:
		return models.CategoryBreakfast
	case hour >= 11 && hour < 14:
		return models.CategoryLunch
	case hour >= 17 && hour < 21:
		return models.CategoryDinner
	default:
		return models.CategorySnack
	}
}

// isDuplicateErr detects unique-constraint violations from Postgres and the
// sqlite test driver
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
