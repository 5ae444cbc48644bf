package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
)

var ErrEntryNotFound = errors.New("journal entry not found")

// FoodLogged is emitted after every nutrition entry insert. Cross-entity
// policies (auto-favoriting) subscribe to it instead of living inside the
// nutrition write path.
type FoodLogged struct {
	UserID          uuid.UUID
	FoodDescription string
	TimeConsumed    string
	LoggedAt        time.Time
}

// FoodLoggedHandler consumes FoodLogged events
type FoodLoggedHandler interface {
	HandleFoodLogged(ctx context.Context, event FoodLogged)
}

// NutritionService owns the nutrition sub-entries of a journal entry
type NutritionService struct {
	db      *gorm.DB
	handler FoodLoggedHandler
	logger  *zap.Logger
}

// NewNutritionService creates the service; handler may be nil when no
// favoriting policy is attached
func NewNutritionService(db *gorm.DB, handler FoodLoggedHandler, logger *zap.Logger) *NutritionService {
	return &NutritionService{
		db:      db,
		handler: handler,
		logger:  logger,
	}
}

// List returns the nutrition entries of one journal entry, ordered by the
// time the food was consumed
func (s *NutritionService) List(ctx context.Context, userID, entryID uuid.UUID) ([]models.NutritionEntry, error) {
	if err := s.checkParent(ctx, userID, entryID); err != nil {
		return nil, err
	}

	var entries []models.NutritionEntry
	err := s.db.WithContext(ctx).
		Where("journal_entry_id = ?", entryID).
		Order("time_consumed ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing nutrition entries: %w", err)
	}
	return entries, nil
}

// Add creates a nutrition entry under an owned journal entry and emits a
// FoodLogged event
func (s *NutritionService) Add(ctx context.Context, userID, entryID uuid.UUID, timeConsumed, foodDescription string) (*models.NutritionEntry, error) {
	if err := s.checkParent(ctx, userID, entryID); err != nil {
		return nil, err
	}
	if _, err := parseClock(timeConsumed); err != nil {
		return nil, fmt.Errorf("invalid time_consumed: %w", err)
	}

	entry := models.NutritionEntry{
		JournalEntryID:  entryID,
		TimeConsumed:    timeConsumed,
		FoodDescription: foodDescription,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("creating nutrition entry: %w", err)
	}

	if s.handler != nil {
		s.handler.HandleFoodLogged(ctx, FoodLogged{
			UserID:          userID,
			FoodDescription: foodDescription,
			TimeConsumed:    timeConsumed,
			LoggedAt:        entry.CreatedAt,
		})
	}

	return &entry, nil
}

// Update modifies an owned nutrition entry
func (s *NutritionService) Update(ctx context.Context, userID, id uuid.UUID, timeConsumed, foodDescription string) (*models.NutritionEntry, error) {
	if _, err := parseClock(timeConsumed); err != nil {
		return nil, fmt.Errorf("invalid time_consumed: %w", err)
	}

	entry, err := s.ownedEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	entry.TimeConsumed = timeConsumed
	entry.FoodDescription = foodDescription
	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, fmt.Errorf("updating nutrition entry: %w", err)
	}
	return entry, nil
}

// Delete removes an owned nutrition entry
func (s *NutritionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := s.ownedEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(entry).Error; err != nil {
		return fmt.Errorf("deleting nutrition entry: %w", err)
	}
	return nil
}

// checkParent verifies the journal entry exists and belongs to the user
func (s *NutritionService) checkParent(ctx context.Context, userID, entryID uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking journal entry: %w", err)
	}
	if count == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ownedEntry loads a nutrition entry and verifies its parent belongs to the user
func (s *NutritionService) ownedEntry(ctx context.Context, userID, id uuid.UUID) (*models.NutritionEntry, error) {
	var entry models.NutritionEntry
	err := s.db.WithContext(ctx).
		Joins("JOIN journal_entries ON journal_entries.id = nutrition_entries.journal_entry_id").
		Where("nutrition_entries.id = ? AND journal_entries.user_id = ?", id, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up nutrition entry: %w", err)
	}
	return &entry, nil
}
