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

// Trend classifies how a metric moved across the analytics window
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// trendThreshold is the half-to-half mean delta below which a metric counts
// as stable
const trendThreshold = 0.2

var ErrInvalidWindow = errors.New("window must be a positive number of days")

// AnalyticsResult summarizes a user's journal over a lookback window
type AnalyticsResult struct {
	TotalEntries    int     `json:"totalEntries"`
	AverageMood     float64 `json:"averageMood"`
	AverageEnergy   float64 `json:"averageEnergy"`
	AverageSleep    float64 `json:"averageSleep"`
	TotalExercise   int     `json:"totalExercise"`
	TotalMeditation int     `json:"totalMeditation"`
	MoodTrend       Trend   `json:"moodTrend"`
	EnergyTrend     Trend   `json:"energyTrend"`
	SleepTrend      Trend   `json:"sleepTrend"`
	CurrentStreak   int     `json:"currentStreak"`
	LongestStreak   int     `json:"longestStreak"`
}

// StatsResult is the lighter dashboard aggregate without trends or streaks
type StatsResult struct {
	TotalEntries    int     `json:"totalEntries"`
	AverageMood     float64 `json:"averageMood"`
	AverageEnergy   float64 `json:"averageEnergy"`
	AverageSleep    float64 `json:"averageSleep"`
	TotalExercise   int     `json:"totalExercise"`
	TotalMeditation int     `json:"totalMeditation"`
}

// AnalyticsService derives averages, trends and streaks from journal entries.
// Pure reads; nothing here mutates the store.
type AnalyticsService struct {
	db     *gorm.DB
	cache  *AnalyticsCache
	logger *zap.Logger

	// now is swappable in tests so streaks have a fixed "today"
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB, cache *AnalyticsCache, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		db:     db,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Analytics computes the full analytics result for the window
// [today-windowDays, today]. It returns nil when the window holds no entries;
// callers must handle absence explicitly.
func (s *AnalyticsService) Analytics(ctx context.Context, userID uuid.UUID, windowDays int) (*AnalyticsResult, error) {
	if windowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID, windowDays); ok {
			return cached, nil
		}
	}

	entries, err := s.windowEntries(ctx, userID, windowDays)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	result := &AnalyticsResult{
		TotalEntries:    len(entries),
		AverageMood:     averagePresent(entries, func(e models.JournalEntry) float64 { return float64(e.Mood) }),
		AverageEnergy:   averagePresent(entries, func(e models.JournalEntry) float64 { return float64(e.EnergyLevel) }),
		AverageSleep:    averagePresent(entries, func(e models.JournalEntry) float64 { return e.SleepHours }),
		TotalExercise:   sumEntries(entries, func(e models.JournalEntry) int { return e.ExerciseMinutes }),
		TotalMeditation: sumEntries(entries, func(e models.JournalEntry) int { return e.MeditationMinutes }),
		MoodTrend:       classifyTrend(entries, func(e models.JournalEntry) float64 { return float64(e.Mood) }),
		EnergyTrend:     classifyTrend(entries, func(e models.JournalEntry) float64 { return float64(e.EnergyLevel) }),
		SleepTrend:      classifyTrend(entries, func(e models.JournalEntry) float64 { return e.SleepHours }),
	}

	current, longest, err := s.streaks(ctx, userID)
	if err != nil {
		return nil, err
	}
	result.CurrentStreak = current
	result.LongestStreak = longest

	if s.cache != nil {
		s.cache.Set(ctx, userID, windowDays, result)
	}
	return result, nil
}

// Stats computes the dashboard aggregate for the window, nil when empty
func (s *AnalyticsService) Stats(ctx context.Context, userID uuid.UUID, windowDays int) (*StatsResult, error) {
	if windowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	entries, err := s.windowEntries(ctx, userID, windowDays)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &StatsResult{
		TotalEntries:    len(entries),
		AverageMood:     averagePresent(entries, func(e models.JournalEntry) float64 { return float64(e.Mood) }),
		AverageEnergy:   averagePresent(entries, func(e models.JournalEntry) float64 { return float64(e.EnergyLevel) }),
		AverageSleep:    averagePresent(entries, func(e models.JournalEntry) float64 { return e.SleepHours }),
		TotalExercise:   sumEntries(entries, func(e models.JournalEntry) int { return e.ExerciseMinutes }),
		TotalMeditation: sumEntries(entries, func(e models.JournalEntry) int { return e.MeditationMinutes }),
	}, nil
}

// CurrentStreak exposes just the consecutive-day run ending today
func (s *AnalyticsService) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	current, _, err := s.streaks(ctx, userID)
	return current, err
}

func (s *AnalyticsService) windowEntries(ctx context.Context, userID uuid.UUID, windowDays int) ([]models.JournalEntry, error) {
	today := s.now()
	from := today.AddDate(0, 0, -windowDays).Format(DateLayout)
	to := today.Format(DateLayout)

	var entries []models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Order("entry_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("fetching analytics window: %w", err)
	}
	return entries, nil
}

// streaks walks the user's full history, not just the analytics window
func (s *AnalyticsService) streaks(ctx context.Context, userID uuid.UUID) (current, longest int, err error) {
	var dates []string
	err = s.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Pluck("entry_date", &dates).Error
	if err != nil {
		return 0, 0, fmt.Errorf("fetching entry dates: %w", err)
	}
	if len(dates) == 0 {
		return 0, 0, nil
	}

	have := make(map[string]bool, len(dates))
	for _, d := range dates {
		have[d] = true
	}

	// Current streak: count backward from today; no entry today means zero,
	// regardless of yesterday.
	day := s.now()
	for have[day.Format(DateLayout)] {
		current++
		day = day.AddDate(0, 0, -1)
	}

	// Longest streak: runs of exactly-one-day gaps over the sorted history.
	run := 0
	var prev time.Time
	for i, d := range dates {
		cur, perr := time.Parse(DateLayout, d)
		if perr != nil {
			return 0, 0, fmt.Errorf("malformed entry date %q: %w", d, perr)
		}
		if i == 0 || int(cur.Sub(prev).Hours()/24) != 1 {
			run = 1
		} else {
			run++
		}
		if run > longest {
			longest = run
		}
		prev = cur
	}

	return current, longest, nil
}

// averagePresent means a metric over the entries where it is present
// (non-zero). Entries that never recorded the metric do not drag the average
// toward zero.
func averagePresent(entries []models.JournalEntry, metric func(models.JournalEntry) float64) float64 {
	sum := 0.0
	count := 0
	for _, e := range entries {
		if v := metric(e); v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func sumEntries(entries []models.JournalEntry, metric func(models.JournalEntry) int) int {
	total := 0
	for _, e := range entries {
		total += metric(e)
	}
	return total
}

// classifyTrend splits the ascending entries at the midpoint and compares the
// two halves' means. Windows with fewer than 2 entries have no meaningful
// halves and classify as stable.
func classifyTrend(entries []models.JournalEntry, metric func(models.JournalEntry) float64) Trend {
	if len(entries) < 2 {
		return TrendStable
	}

	half := len(entries) / 2
	delta := averagePresent(entries[half:], metric) - averagePresent(entries[:half], metric)

	if delta < trendThreshold && delta > -trendThreshold {
		return TrendStable
	}
	if delta > 0 {
		return TrendImproving
	}
	return TrendDeclining
}
