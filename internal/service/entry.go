package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/types"
)

// DateLayout is the calendar-date format used for entry natural keys
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// EntryService owns journal entries: natural-key upserts, range queries and
// the sleep-hours derivation.
type EntryService struct {
	db     *gorm.DB
	cache  *AnalyticsCache
	logger *zap.Logger
}

func NewEntryService(db *gorm.DB, cache *AnalyticsCache, logger *zap.Logger) *EntryService {
	return &EntryService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// GetByDate returns the entry for a date, or nil when none exists. Absence is
// a normal outcome, not an error.
func (s *EntryService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*models.JournalEntry, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	var entry models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching entry: %w", err)
	}
	return &entry, nil
}

// List returns entries with entry_date in [from, to], ascending by date
func (s *EntryService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]models.JournalEntry, error) {
	for _, d := range []string{from, to} {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return nil, ErrInvalidDate
		}
	}

	var entries []models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Order("entry_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// Save upserts the entry for (userID, date). The natural key is looked up
// first; an existing row is overwritten field by field, so the last save wins.
// SleepHours is recomputed from bedtime and wake-up time right before
// persisting, overriding whatever the client sent.
func (s *EntryService) Save(ctx context.Context, userID uuid.UUID, date string, input types.EntryInput) (*models.JournalEntry, error) {
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	if verrs := ValidateEntry(input); len(verrs) > 0 {
		return nil, verrs
	}

	sleepHours := SleepHours(input.Bedtime, input.WakeUpTime)

	var entry models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.JournalEntry{
			UserID:    userID,
			EntryDate: date,
		}
		applyEntryInput(&entry, input, sleepHours)
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return nil, fmt.Errorf("creating entry: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("looking up entry: %w", err)
	default:
		applyEntryInput(&entry, input, sleepHours)
		if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
			return nil, fmt.Errorf("updating entry: %w", err)
		}
	}

	s.invalidateAnalytics(ctx, userID)
	s.logger.Info("entry saved",
		zap.String("user_id", userID.String()),
		zap.String("entry_date", date),
	)
	return &entry, nil
}

// Delete removes an entry owned by the user; nutrition rows cascade
func (s *EntryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gorm.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("looking up entry: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Where("journal_entry_id = ?", entry.ID).
		Delete(&models.NutritionEntry{}).Error; err != nil {
		return fmt.Errorf("deleting nutrition entries: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	s.invalidateAnalytics(ctx, userID)
	return nil
}

func (s *EntryService) invalidateAnalytics(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("analytics cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func applyEntryInput(entry *models.JournalEntry, input types.EntryInput, sleepHours float64) {
	entry.Mood = input.Mood
	entry.EnergyLevel = input.EnergyLevel
	entry.DailyIntention = input.DailyIntention
	entry.SleepQuality = input.SleepQuality
	entry.WakeUpTime = strings.TrimSpace(input.WakeUpTime)
	entry.Bedtime = strings.TrimSpace(input.Bedtime)
	entry.SleepHours = sleepHours
	entry.StressLevel = input.StressLevel
	entry.ExerciseMinutes = input.ExerciseMinutes
	entry.ExerciseType = input.ExerciseType
	entry.MeditationMinutes = input.MeditationMinutes
	entry.MeditationType = input.MeditationType
	entry.OutdoorTime = input.OutdoorTime
	entry.WaterGlasses = input.WaterGlasses
	entry.Gratitude = input.Gratitude
	entry.DayHighlight = input.DayHighlight
	entry.ChallengesFaced = input.ChallengesFaced
	entry.TomorrowFocus = input.TomorrowFocus
	entry.Notes = input.Notes
}

// SleepHours derives elapsed sleep from two "HH:MM" clock times. A wake time
// at or before bedtime is treated as the following day. Empty input yields 0
// rather than an error. The result is rounded half-up to one decimal.
func SleepHours(bedtime, wakeUpTime string) float64 {
	bed, err := parseClock(bedtime)
	if err != nil {
		return 0
	}
	wake, err := parseClock(wakeUpTime)
	if err != nil {
		return 0
	}

	if wake <= bed {
		wake += 24 * 60
	}

	hours := float64(wake-bed) / 60
	return math.Round(hours*10) / 10
}

// parseClock converts "HH:MM" to minutes since midnight
func parseClock(clock string) (int, error) {
	clock = strings.TrimSpace(clock)
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour*60 + minute, nil
}
