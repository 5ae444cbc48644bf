// Package wizard implements the four-step daily entry form as a server-held
// state machine. Steps advance strictly in order, each gated by validation of
// only its own fields, and the entry is persisted early on the transition into
// the nutrition step so nutrition sub-entries have a parent id before the form
// is finally submitted.
package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kampki/lifeofki/backend/internal/models"
	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
)

// Step identifies a wizard step, in order
type Step int

const (
	StepBasicInfo Step = iota
	StepSleepWellness
	StepActivities
	StepNutrition
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepSleepWellness:
		return "sleep_wellness"
	case StepActivities:
		return "activities"
	case StepNutrition:
		return "nutrition"
	default:
		return "unknown"
	}
}

// stepFields maps each step to the only fields its Next transition validates
var stepFields = map[Step][]string{
	StepBasicInfo: {
		service.FieldMood,
		service.FieldEnergyLevel,
		service.FieldDailyIntention,
	},
	StepSleepWellness: {
		service.FieldSleepQuality,
		service.FieldWakeUpTime,
		service.FieldBedtime,
		service.FieldStressLevel,
	},
	StepActivities: {
		service.FieldExerciseMinutes,
		service.FieldMeditationMinutes,
		service.FieldOutdoorTime,
	},
	StepNutrition: {
		service.FieldWaterGlasses,
	},
}

var (
	ErrNoSession = errors.New("no active wizard session")
	ErrFirstStep = errors.New("already on the first step")
	ErrLastStep  = errors.New("already on the last step, submit instead")
	ErrNotReady  = errors.New("submit is only allowed from the nutrition step")
)

// Session is one user's in-progress daily entry form
type Session struct {
	UserID    uuid.UUID        `json:"user_id"`
	EntryDate string           `json:"entry_date"`
	Step      Step             `json:"step"`
	Values    types.EntryInput `json:"values"`

	// EntryID is set once the entry has been persisted, either by loading an
	// existing entry at start or by the implicit save entering the nutrition
	// step. While nil on the nutrition step the form runs in limited mode.
	EntryID     *uuid.UUID `json:"entry_id,omitempty"`
	LimitedMode bool       `json:"limited_mode"`

	UpdatedAt time.Time `json:"updated_at"`
}

// EntryStore is the slice of EntryService the wizard needs
type EntryStore interface {
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*models.JournalEntry, error)
	Save(ctx context.Context, userID uuid.UUID, date string, input types.EntryInput) (*models.JournalEntry, error)
}

// Manager drives wizard sessions
type Manager struct {
	store   SessionStore
	entries EntryStore
	logger  *zap.Logger
}

func NewManager(store SessionStore, entries EntryStore, logger *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		entries: entries,
		logger:  logger,
	}
}

// Start opens a session for the given date (today when empty), replacing any
// previous session. If an entry already exists for the date, its fields are
// pre-populated and its id captured immediately, so the implicit mid-flow save
// is not needed to enter nutrition.
func (m *Manager) Start(ctx context.Context, userID uuid.UUID, date string) (*Session, error) {
	if date == "" {
		date = time.Now().Format(service.DateLayout)
	}
	if _, err := time.Parse(service.DateLayout, date); err != nil {
		return nil, service.ErrInvalidDate
	}

	session := &Session{
		UserID:    userID,
		EntryDate: date,
		Step:      StepBasicInfo,
		Values:    types.DefaultEntryInput(),
		UpdatedAt: time.Now(),
	}

	existing, err := m.entries.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		session.Values = entryValues(existing)
		id := existing.ID
		session.EntryID = &id
	}

	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns the active session, or ErrNoSession
func (m *Manager) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	session, err := m.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoSession
	}
	return session, nil
}

// Next validates the current step's fields against the submitted values and
// advances. A validation failure rejects the transition: the step is
// unchanged and the errors are returned as a field map.
//
// Advancing out of the activities step additionally persists the entry so the
// nutrition step has a parent id. If that save fails the wizard still
// advances, but in limited mode: no id is available and nutrition sub-entries
// cannot be created until a later save succeeds.
func (m *Manager) Next(ctx context.Context, userID uuid.UUID, values types.EntryInput) (*Session, error) {
	session, err := m.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step >= StepNutrition {
		return nil, ErrLastStep
	}

	if verrs := service.ValidateEntryFields(values, stepFields[session.Step]); len(verrs) > 0 {
		return session, verrs
	}

	session.Values = values

	if session.Step == StepActivities {
		entry, saveErr := m.entries.Save(ctx, userID, session.EntryDate, values)
		if saveErr != nil {
			m.logger.Warn("implicit entry save failed, entering limited mode",
				zap.String("user_id", userID.String()),
				zap.String("entry_date", session.EntryDate),
				zap.Error(saveErr),
			)
			session.EntryID = nil
			session.LimitedMode = true
		} else {
			id := entry.ID
			session.EntryID = &id
			session.LimitedMode = false
		}
	}

	session.Step++
	session.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Previous steps back without validation or persistence
func (m *Manager) Previous(ctx context.Context, userID uuid.UUID) (*Session, error) {
	session, err := m.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step == StepBasicInfo {
		return nil, ErrFirstStep
	}

	session.Step--
	session.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit re-validates the complete form and performs the final upsert. It is
// only reachable from the nutrition step; the same natural-key upsert as the
// mid-flow save makes it idempotent. On success the session ends; on failure
// the session stays on nutrition for the user to retry.
func (m *Manager) Submit(ctx context.Context, userID uuid.UUID, values types.EntryInput) (*models.JournalEntry, error) {
	session, err := m.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != StepNutrition {
		return nil, ErrNotReady
	}

	if verrs := service.ValidateEntry(values); len(verrs) > 0 {
		return nil, verrs
	}

	entry, err := m.entries.Save(ctx, userID, session.EntryDate, values)
	if err != nil {
		return nil, err
	}

	if err := m.store.Delete(ctx, userID); err != nil {
		m.logger.Warn("wizard session cleanup failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
	return entry, nil
}

// Cancel discards the active session
func (m *Manager) Cancel(ctx context.Context, userID uuid.UUID) error {
	return m.store.Delete(ctx, userID)
}

func entryValues(entry *models.JournalEntry) types.EntryInput {
	return types.EntryInput{
		Mood:              entry.Mood,
		EnergyLevel:       entry.EnergyLevel,
		DailyIntention:    entry.DailyIntention,
		SleepQuality:      entry.SleepQuality,
		WakeUpTime:        entry.WakeUpTime,
		Bedtime:           entry.Bedtime,
		StressLevel:       entry.StressLevel,
		ExerciseMinutes:   entry.ExerciseMinutes,
		ExerciseType:      entry.ExerciseType,
		MeditationMinutes: entry.MeditationMinutes,
		MeditationType:    entry.MeditationType,
		OutdoorTime:       entry.OutdoorTime,
		WaterGlasses:      entry.WaterGlasses,
		Gratitude:         entry.Gratitude,
		DayHighlight:      entry.DayHighlight,
		ChallengesFaced:   entry.ChallengesFaced,
		TomorrowFocus:     entry.TomorrowFocus,
		Notes:             entry.Notes,
	}
}
