package service

import (
	"fmt"
	"strings"

	"github.com/kampki/lifeofki/backend/internal/types"
)

// Field names used in entry validation, matching the JSON payload
const (
	FieldMood              = "mood"
	FieldEnergyLevel       = "energy_level"
	FieldDailyIntention    = "daily_intention"
	FieldSleepQuality      = "sleep_quality"
	FieldWakeUpTime        = "wake_up_time"
	FieldBedtime           = "bedtime"
	FieldStressLevel       = "stress_level"
	FieldExerciseMinutes   = "exercise_minutes"
	FieldMeditationMinutes = "meditation_minutes"
	FieldOutdoorTime       = "outdoor_time"
	FieldWaterGlasses      = "water_glasses"
	FieldGratitude         = "gratitude"
	FieldDayHighlight      = "day_highlight"
	FieldChallengesFaced   = "challenges_faced"
	FieldTomorrowFocus     = "tomorrow_focus"
	FieldNotes             = "notes"
)

// AllEntryFields covers the complete form
var AllEntryFields = []string{
	FieldMood, FieldEnergyLevel, FieldDailyIntention,
	FieldSleepQuality, FieldWakeUpTime, FieldBedtime, FieldStressLevel,
	FieldExerciseMinutes, FieldMeditationMinutes, FieldOutdoorTime,
	FieldWaterGlasses,
	FieldGratitude, FieldDayHighlight, FieldChallengesFaced,
	FieldTomorrowFocus, FieldNotes,
}

// ValidateEntry checks the complete form
func ValidateEntry(input types.EntryInput) types.ValidationErrors {
	return ValidateEntryFields(input, AllEntryFields)
}

// ValidateEntryFields checks only the named fields, so a wizard step can be
// validated without touching fields belonging to later steps.
func ValidateEntryFields(input types.EntryInput, fields []string) types.ValidationErrors {
	errs := types.ValidationErrors{}
	for _, field := range fields {
		switch field {
		case FieldMood:
			checkScale(errs, field, "mood", input.Mood)
		case FieldEnergyLevel:
			checkScale(errs, field, "energy level", input.EnergyLevel)
		case FieldDailyIntention:
			if strings.TrimSpace(input.DailyIntention) == "" {
				errs.Add(field, "daily intention is required")
			} else if len(input.DailyIntention) > 500 {
				errs.Add(field, "daily intention must be at most 500 characters")
			}
		case FieldSleepQuality:
			checkScale(errs, field, "sleep quality", input.SleepQuality)
		case FieldWakeUpTime:
			checkClock(errs, field, "wake-up time", input.WakeUpTime)
		case FieldBedtime:
			checkClock(errs, field, "bedtime", input.Bedtime)
		case FieldStressLevel:
			checkScale(errs, field, "stress level", input.StressLevel)
		case FieldExerciseMinutes:
			checkMinutes(errs, field, "exercise minutes", input.ExerciseMinutes)
		case FieldMeditationMinutes:
			checkMinutes(errs, field, "meditation minutes", input.MeditationMinutes)
		case FieldOutdoorTime:
			checkMinutes(errs, field, "outdoor time", input.OutdoorTime)
		case FieldWaterGlasses:
			if input.WaterGlasses < 0 || input.WaterGlasses > 20 {
				errs.Add(field, "water glasses must be between 0 and 20")
			}
		case FieldGratitude:
			checkLength(errs, field, "gratitude", input.Gratitude, 1000)
		case FieldDayHighlight:
			checkLength(errs, field, "day highlight", input.DayHighlight, 1000)
		case FieldChallengesFaced:
			checkLength(errs, field, "challenges", input.ChallengesFaced, 1000)
		case FieldTomorrowFocus:
			checkLength(errs, field, "tomorrow focus", input.TomorrowFocus, 500)
		case FieldNotes:
			checkLength(errs, field, "notes", input.Notes, 2000)
		}
	}
	return errs
}

func checkScale(errs types.ValidationErrors, field, label string, value int) {
	if value < 1 || value > 5 {
		errs.Add(field, fmt.Sprintf("%s must be between 1 and 5", label))
	}
}

func checkMinutes(errs types.ValidationErrors, field, label string, value int) {
	if value < 0 {
		errs.Add(field, fmt.Sprintf("%s cannot be negative", label))
	} else if value > 1440 {
		errs.Add(field, fmt.Sprintf("%s cannot exceed 1440", label))
	}
}

func checkClock(errs types.ValidationErrors, field, label string, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, fmt.Sprintf("%s is required", label))
		return
	}
	if _, err := parseClock(value); err != nil {
		errs.Add(field, fmt.Sprintf("%s must be a valid HH:MM time", label))
	}
}

func checkLength(errs types.ValidationErrors, field, label, value string, max int) {
	if len(value) > max {
		errs.Add(field, fmt.Sprintf("%s must be at most %d characters", label, max))
	}
}
