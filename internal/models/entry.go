package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is one day of journaling. At most one entry exists per user per
// calendar date; EntryDate is the "YYYY-MM-DD" local date. SleepHours is always
// derived server-side from Bedtime and WakeUpTime, never taken from the client.
type JournalEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_entries_user_date,unique" json:"user_id"`
	EntryDate string    `gorm:"size:10;not null;index:idx_entries_user_date,unique" json:"entry_date"`

	Mood           int    `gorm:"not null;check:mood >= 1 AND mood <= 5" json:"mood"`
	EnergyLevel    int    `gorm:"not null;check:energy_level >= 1 AND energy_level <= 5" json:"energy_level"`
	DailyIntention string `gorm:"size:500;not null" json:"daily_intention"`

	SleepQuality int     `gorm:"not null;check:sleep_quality >= 1 AND sleep_quality <= 5" json:"sleep_quality"`
	WakeUpTime   string  `gorm:"size:5;not null" json:"wake_up_time"`
	Bedtime      string  `gorm:"size:5;not null" json:"bedtime"`
	SleepHours   float64 `json:"sleep_hours"`
	StressLevel  int     `gorm:"not null;check:stress_level >= 1 AND stress_level <= 5" json:"stress_level"`

	ExerciseMinutes   int    `gorm:"not null;default:0" json:"exercise_minutes"`
	ExerciseType      string `gorm:"size:50" json:"exercise_type"`
	MeditationMinutes int    `gorm:"not null;default:0" json:"meditation_minutes"`
	MeditationType    string `gorm:"size:50" json:"meditation_type"`
	OutdoorTime       int    `gorm:"not null;default:0" json:"outdoor_time"`

	WaterGlasses int `gorm:"not null;default:0;check:water_glasses >= 0 AND water_glasses <= 20" json:"water_glasses"`

	Gratitude       string `gorm:"size:1000" json:"gratitude"`
	DayHighlight    string `gorm:"size:1000" json:"day_highlight"`
	ChallengesFaced string `gorm:"size:1000" json:"challenges_faced"`
	TomorrowFocus   string `gorm:"size:500" json:"tomorrow_focus"`
	Notes           string `gorm:"size:2000" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NutritionEntries []NutritionEntry `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE" json:"nutrition_entries,omitempty"`
}

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NutritionEntry is a meal or drink logged under one journal entry.
type NutritionEntry struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	JournalEntryID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"journal_entry_id"`
	TimeConsumed    string    `gorm:"size:5;not null" json:"time_consumed"`
	FoodDescription string    `gorm:"type:text;not null" json:"food_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (n *NutritionEntry) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
