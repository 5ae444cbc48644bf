package types

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EntryInput carries the journal entry fields a client may set. SleepHours is
// deliberately absent: it is derived from Bedtime and WakeUpTime on save.
type EntryInput struct {
	Mood           int    `json:"mood"`
	EnergyLevel    int    `json:"energy_level"`
	DailyIntention string `json:"daily_intention"`

	SleepQuality int    `json:"sleep_quality"`
	WakeUpTime   string `json:"wake_up_time"`
	Bedtime      string `json:"bedtime"`
	StressLevel  int    `json:"stress_level"`

	ExerciseMinutes   int    `json:"exercise_minutes"`
	ExerciseType      string `json:"exercise_type"`
	MeditationMinutes int    `json:"meditation_minutes"`
	MeditationType    string `json:"meditation_type"`
	OutdoorTime       int    `json:"outdoor_time"`

	WaterGlasses int `json:"water_glasses"`

	Gratitude       string `json:"gratitude"`
	DayHighlight    string `json:"day_highlight"`
	ChallengesFaced string `json:"challenges_faced"`
	TomorrowFocus   string `json:"tomorrow_focus"`
	Notes           string `json:"notes"`
}

// DefaultEntryInput returns the values a fresh wizard session starts from
func DefaultEntryInput() EntryInput {
	return EntryInput{
		Mood:         3,
		EnergyLevel:  3,
		SleepQuality: 3,
		StressLevel:  3,
		WakeUpTime:   "07:00",
		Bedtime:      "22:30",
		WaterGlasses: 8,
	}
}

// NutritionInput is the payload for creating or updating a nutrition entry
type NutritionInput struct {
	TimeConsumed    string `json:"time_consumed" binding:"required"`
	FoodDescription string `json:"food_description" binding:"required"`
}

// FavoriteInput is the payload for explicitly adding a favorite food
type FavoriteInput struct {
	Name        string `json:"name"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
	DefaultTime string `json:"default_time"`
}

// ReflectionInput carries the weekly reflection fields a client may set
type ReflectionInput struct {
	PersonalInsight         string `json:"personal_insight"`
	MovementGoalAchieved    bool   `json:"movement_goal_achieved"`
	MovementGoalNextWeek    string `json:"movement_goal_next_week"`
	NutritionGoalAchieved   bool   `json:"nutrition_goal_achieved"`
	NutritionGoalNextWeek   string `json:"nutrition_goal_next_week"`
	FavoriteRelaxation      string `json:"favorite_relaxation"`
	RelaxationGoalNextWeek  string `json:"relaxation_goal_next_week"`
	OverallEnergyReflection string `json:"overall_energy_reflection"`
}

// PreferencesUpdate carries optional preference changes; nil fields are left
// untouched
type PreferencesUpdate struct {
	WeekStartDay *int    `json:"week_start_day"`
	Theme        *string `json:"theme"`
}
