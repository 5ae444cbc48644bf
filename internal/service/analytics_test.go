package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/service"
)

var analyticsToday = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func newAnalyticsService(db *gorm.DB) *service.AnalyticsService {
	svc := service.NewAnalyticsService(db, nil, zap.NewNop())
	svc.SetNow(func() time.Time { return analyticsToday })
	return svc
}

// seedDays creates one entry per day offset relative to the pinned today,
// 0 meaning today and positive offsets reaching back in time
func seedDays(t *testing.T, db *gorm.DB, userID uuid.UUID, offsets []int, mutate func(i int, e *models.JournalEntry)) {
	t.Helper()
	for i, offset := range offsets {
		date := analyticsToday.AddDate(0, 0, -offset).Format(service.DateLayout)
		idx := i
		seedEntry(t, db, userID, date, func(e *models.JournalEntry) {
			if mutate != nil {
				mutate(idx, e)
			}
		})
	}
}

func TestAnalyticsEmptyWindow(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	result, err := svc.Analytics(context.Background(), userID, 30)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestAnalyticsInvalidWindow(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	_, err := svc.Analytics(context.Background(), userID, 0)
	assert.ErrorIs(t, err, service.ErrInvalidWindow)
	_, err = svc.Analytics(context.Background(), userID, -7)
	assert.ErrorIs(t, err, service.ErrInvalidWindow)
}

func TestAnalyticsAveragesAndTotals(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	moods := []int{2, 4, 3}
	seedDays(t, db, userID, []int{2, 1, 0}, func(i int, e *models.JournalEntry) {
		e.Mood = moods[i]
		e.ExerciseMinutes = 30
		e.MeditationMinutes = 10
	})

	result, err := svc.Analytics(context.Background(), userID, 30)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.TotalEntries)
	assert.InDelta(t, 3.0, result.AverageMood, 0.001)
	assert.Equal(t, 90, result.TotalExercise)
	assert.Equal(t, 30, result.TotalMeditation)
}

// entries that never recorded sleep do not drag the sleep average toward zero
func TestAnalyticsAverageSkipsMissingMetrics(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	sleep := []float64{8.0, 0, 6.0}
	seedDays(t, db, userID, []int{2, 1, 0}, func(i int, e *models.JournalEntry) {
		e.SleepHours = sleep[i]
	})

	result, err := svc.Analytics(context.Background(), userID, 30)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, result.AverageSleep, 0.001)
}

func TestTrendClassification(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
		want  service.Trend
	}{
		{"improving", []int{2, 2, 2, 4, 4, 4}, service.TrendImproving},
		{"declining", []int{4, 4, 4, 2, 2, 2}, service.TrendDeclining},
		{"flat", []int{3, 3, 3, 3}, service.TrendStable},
		{"single entry", []int{5}, service.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			svc := newAnalyticsService(db)
			userID := createUser(t, db)

			offsets := make([]int, len(tt.moods))
			for i := range tt.moods {
				offsets[i] = len(tt.moods) - 1 - i
			}
			seedDays(t, db, userID, offsets, func(i int, e *models.JournalEntry) {
				e.Mood = tt.moods[i]
			})

			result, err := svc.Analytics(context.Background(), userID, 30)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.MoodTrend)
		})
	}
}

func TestStreaks(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	// 8 entries with a one-day hole: a 3-day run, then a 5-day run ending today
	seedDays(t, db, userID, []int{8, 7, 6, 4, 3, 2, 1, 0}, nil)

	result, err := svc.Analytics(context.Background(), userID, 30)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.CurrentStreak)
	assert.Equal(t, 5, result.LongestStreak)
}

func TestCurrentStreakZeroWithoutToday(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	// yesterday and before, nothing today
	seedDays(t, db, userID, []int{3, 2, 1}, nil)

	current, err := svc.CurrentStreak(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, current)

	result, err := svc.Analytics(context.Background(), userID, 30)
	require.NoError(t, err)
	assert.Zero(t, result.CurrentStreak)
	assert.Equal(t, 3, result.LongestStreak)
}

func TestStatsOmitsTrendsAndStreaks(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	seedDays(t, db, userID, []int{1, 0}, func(i int, e *models.JournalEntry) {
		e.ExerciseMinutes = 20
	})

	stats, err := svc.Stats(context.Background(), userID, 7)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 40, stats.TotalExercise)
}

func TestStatsEmptyWindow(t *testing.T) {
	db := setupDB(t)
	svc := newAnalyticsService(db)
	userID := createUser(t, db)

	stats, err := svc.Stats(context.Background(), userID, 7)
	require.NoError(t, err)
	assert.Nil(t, stats)
}
