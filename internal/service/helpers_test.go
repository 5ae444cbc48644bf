package service_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/testdb"
	"github.com/kampki/lifeofki/backend/internal/types"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.Open(t)
}

func createUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

// validEntryInput fills the fields the full-form validation requires
func validEntryInput() types.EntryInput {
	input := types.DefaultEntryInput()
	input.DailyIntention = "stay present"
	return input
}

func seedEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, date string, mutate func(*models.JournalEntry)) *models.JournalEntry {
	t.Helper()
	entry := &models.JournalEntry{
		UserID:         userID,
		EntryDate:      date,
		Mood:           3,
		EnergyLevel:    3,
		DailyIntention: "stay present",
		SleepQuality:   3,
		WakeUpTime:     "07:00",
		Bedtime:        "22:30",
		SleepHours:     8.5,
		StressLevel:    3,
	}
	if mutate != nil {
		mutate(entry)
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func newEntryService(db *gorm.DB) *service.EntryService {
	return service.NewEntryService(db, nil, zap.NewNop())
}
