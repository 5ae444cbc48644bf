package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyReflection holds one reflection per user per week. WeekStart is the
// "YYYY-MM-DD" date of the user's configured first day of the week.
type WeeklyReflection struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_reflections_user_week,unique" json:"user_id"`
	WeekStart string    `gorm:"size:10;not null;index:idx_reflections_user_week,unique" json:"week_start"`
	WeekEnd   string    `gorm:"size:10;not null" json:"week_end"`

	PersonalInsight         string `gorm:"size:2000" json:"personal_insight"`
	MovementGoalAchieved    bool   `json:"movement_goal_achieved"`
	MovementGoalNextWeek    string `gorm:"size:500" json:"movement_goal_next_week"`
	NutritionGoalAchieved   bool   `json:"nutrition_goal_achieved"`
	NutritionGoalNextWeek   string `gorm:"size:500" json:"nutrition_goal_next_week"`
	FavoriteRelaxation      string `gorm:"size:500" json:"favorite_relaxation"`
	RelaxationGoalNextWeek  string `gorm:"size:500" json:"relaxation_goal_next_week"`
	OverallEnergyReflection string `gorm:"size:2000" json:"overall_energy_reflection"`
	AssignmentCompleted     bool   `gorm:"not null;default:false" json:"assignment_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *WeeklyReflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
