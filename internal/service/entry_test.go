package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
)

func TestSleepHours(t *testing.T) {
	tests := []struct {
		name    string
		bedtime string
		wake    string
		want    float64
	}{
		{"across midnight", "23:00", "07:00", 8.0},
		{"rounded to one decimal", "22:30", "06:15", 7.8},
		{"same evening", "01:00", "09:30", 8.5},
		{"wake equals bedtime wraps a full day", "22:00", "22:00", 24.0},
		{"empty bedtime", "", "07:00", 0},
		{"empty wake", "23:00", "", 0},
		{"malformed clock", "25:00", "07:00", 0},
		{"missing minutes", "23", "07:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.SleepHours(tt.bedtime, tt.wake), 0.001)
		})
	}
}

func TestSaveCreatesEntry(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)

	input := validEntryInput()
	input.Mood = 4
	input.Gratitude = "morning walk"

	entry, err := svc.Save(context.Background(), userID, "2026-08-25", input)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25", entry.EntryDate)
	assert.Equal(t, 4, entry.Mood)
	assert.Equal(t, "morning walk", entry.Gratitude)
	assert.InDelta(t, 8.5, entry.SleepHours, 0.001)
}

func TestSaveUpsertsOnSameDate(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)
	ctx := context.Background()

	first, err := svc.Save(ctx, userID, "2026-08-25", validEntryInput())
	require.NoError(t, err)

	input := validEntryInput()
	input.Mood = 5
	input.Notes = "second save wins"
	second, err := svc.Save(ctx, userID, "2026-08-25", input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.JournalEntry{}).
		Where("user_id = ? AND entry_date = ?", userID, "2026-08-25").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := svc.GetByDate(ctx, userID, "2026-08-25")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Mood)
	assert.Equal(t, "second save wins", stored.Notes)
}

func TestSaveRecomputesSleepHours(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)

	input := validEntryInput()
	input.Bedtime = "23:00"
	input.WakeUpTime = "06:30"

	entry, err := svc.Save(context.Background(), userID, "2026-08-25", input)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, entry.SleepHours, 0.001)
}

func TestSaveRejectsInvalidInput(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)
	ctx := context.Background()

	_, err := svc.Save(ctx, userID, "not-a-date", validEntryInput())
	assert.ErrorIs(t, err, service.ErrInvalidDate)

	input := validEntryInput()
	input.Mood = 0
	input.DailyIntention = ""
	_, err = svc.Save(ctx, userID, "2026-08-25", input)
	var verrs types.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "mood")
	assert.Contains(t, verrs, "daily_intention")
}

func TestGetByDateAbsent(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)

	entry, err := svc.GetByDate(context.Background(), userID, "2026-08-25")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestListReturnsRangeAscending(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)
	otherID := createUser(t, db)

	seedEntry(t, db, userID, "2026-08-20", nil)
	seedEntry(t, db, userID, "2026-08-22", nil)
	seedEntry(t, db, userID, "2026-08-25", nil)
	seedEntry(t, db, userID, "2026-07-01", nil)
	seedEntry(t, db, otherID, "2026-08-21", nil)

	entries, err := svc.List(context.Background(), userID, "2026-08-19", "2026-08-23")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-20", entries[0].EntryDate)
	assert.Equal(t, "2026-08-22", entries[1].EntryDate)
}

func TestDeleteRemovesNutritionChildren(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)

	entry := seedEntry(t, db, userID, "2026-08-25", nil)
	require.NoError(t, db.Create(&models.NutritionEntry{
		JournalEntryID:  entry.ID,
		TimeConsumed:    "08:00",
		FoodDescription: "oatmeal with berries",
	}).Error)

	require.NoError(t, svc.Delete(context.Background(), userID, entry.ID))

	var entryCount, nutritionCount int64
	require.NoError(t, db.Model(&models.JournalEntry{}).Where("id = ?", entry.ID).Count(&entryCount).Error)
	require.NoError(t, db.Model(&models.NutritionEntry{}).Where("journal_entry_id = ?", entry.ID).Count(&nutritionCount).Error)
	assert.Zero(t, entryCount)
	assert.Zero(t, nutritionCount)
}

func TestDeleteRejectsForeignEntry(t *testing.T) {
	db := setupDB(t)
	svc := newEntryService(db)
	userID := createUser(t, db)
	otherID := createUser(t, db)

	entry := seedEntry(t, db, otherID, "2026-08-25", nil)
	err := svc.Delete(context.Background(), userID, entry.ID)
	assert.Error(t, err)
}
