package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/types"
)

// ReflectionService owns weekly reflections, keyed by (user, week start).
// Week boundaries depend on the user's configured first day of the week.
type ReflectionService struct {
	db    *gorm.DB
	prefs *PreferencesService
}

func NewReflectionService(db *gorm.DB, prefs *PreferencesService) *ReflectionService {
	return &ReflectionService{
		db:    db,
		prefs: prefs,
	}
}

// WeekBounds returns the "YYYY-MM-DD" start and end of the week containing
// date, where weekStartDay is 0 (Sunday) through 6 (Saturday). The span is
// always 7 days inclusive.
func WeekBounds(date time.Time, weekStartDay int) (weekStart, weekEnd string) {
	diff := int(date.Weekday()) - weekStartDay
	if diff < 0 {
		diff += 7
	}
	start := date.AddDate(0, 0, -diff)
	end := start.AddDate(0, 0, 6)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// Current returns this week's reflection, or nil when none exists
func (s *ReflectionService) Current(ctx context.Context, userID uuid.UUID) (*models.WeeklyReflection, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	weekStart, _ := WeekBounds(time.Now(), prefs.WeekStartDay)
	return s.GetForWeek(ctx, userID, weekStart)
}

// GetForWeek returns the reflection for a week start date, nil when absent
func (s *ReflectionService) GetForWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*models.WeeklyReflection, error) {
	if _, err := time.Parse(DateLayout, weekStart); err != nil {
		return nil, ErrInvalidDate
	}

	var reflection models.WeeklyReflection
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&reflection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching reflection: %w", err)
	}
	return &reflection, nil
}

// SaveForWeek upserts the reflection for (userID, weekStart). An empty
// weekStart targets the current week per the user's preferences.
func (s *ReflectionService) SaveForWeek(ctx context.Context, userID uuid.UUID, weekStart string, input types.ReflectionInput) (*models.WeeklyReflection, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var weekEnd string
	if weekStart == "" {
		weekStart, weekEnd = WeekBounds(time.Now(), prefs.WeekStartDay)
	} else {
		parsed, perr := time.Parse(DateLayout, weekStart)
		if perr != nil {
			return nil, ErrInvalidDate
		}
		weekStart, weekEnd = WeekBounds(parsed, prefs.WeekStartDay)
	}

	if verrs := validateReflection(input); len(verrs) > 0 {
		return nil, verrs
	}

	var reflection models.WeeklyReflection
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&reflection).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		reflection = models.WeeklyReflection{
			UserID:              userID,
			WeekStart:           weekStart,
			WeekEnd:             weekEnd,
			AssignmentCompleted: false,
		}
		applyReflectionInput(&reflection, input)
		if err := s.db.WithContext(ctx).Create(&reflection).Error; err != nil {
			return nil, fmt.Errorf("creating reflection: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("looking up reflection: %w", err)
	default:
		applyReflectionInput(&reflection, input)
		if err := s.db.WithContext(ctx).Save(&reflection).Error; err != nil {
			return nil, fmt.Errorf("updating reflection: %w", err)
		}
	}

	return &reflection, nil
}

// ListCompleted returns filled-in reflections, newest week first
func (s *ReflectionService) ListCompleted(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.WeeklyReflection, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var reflections []models.WeeklyReflection
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND personal_insight <> ''", userID).
		Order("week_start DESC").
		Limit(limit).
		Offset(offset).
		Find(&reflections).Error
	if err != nil {
		return nil, fmt.Errorf("listing reflections: %w", err)
	}
	return reflections, nil
}

func validateReflection(input types.ReflectionInput) types.ValidationErrors {
	errs := types.ValidationErrors{}
	checkLength(errs, "personal_insight", "personal insight", input.PersonalInsight, 2000)
	checkLength(errs, "movement_goal_next_week", "movement goal", input.MovementGoalNextWeek, 500)
	checkLength(errs, "nutrition_goal_next_week", "nutrition goal", input.NutritionGoalNextWeek, 500)
	checkLength(errs, "favorite_relaxation", "favorite relaxation", input.FavoriteRelaxation, 500)
	checkLength(errs, "relaxation_goal_next_week", "relaxation goal", input.RelaxationGoalNextWeek, 500)
	checkLength(errs, "overall_energy_reflection", "energy reflection", input.OverallEnergyReflection, 2000)
	return errs
}

func applyReflectionInput(reflection *models.WeeklyReflection, input types.ReflectionInput) {
	reflection.PersonalInsight = input.PersonalInsight
	reflection.MovementGoalAchieved = input.MovementGoalAchieved
	reflection.MovementGoalNextWeek = input.MovementGoalNextWeek
	reflection.NutritionGoalAchieved = input.NutritionGoalAchieved
	reflection.NutritionGoalNextWeek = input.NutritionGoalNextWeek
	reflection.FavoriteRelaxation = input.FavoriteRelaxation
	reflection.RelaxationGoalNextWeek = input.RelaxationGoalNextWeek
	reflection.OverallEnergyReflection = input.OverallEnergyReflection
}
