package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food categories, inferred from the hour a food was first logged.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnack     = "snack"
	CategoryDrink     = "drink"
	CategoryOther     = "other"
)

// FavoriteFood is a per-user shortcut for a frequently logged food. Description
// is the full original text and is unique per user; Name is its first line.
type FavoriteFood struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index:idx_favorites_user_desc,unique" json:"user_id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Description string    `gorm:"size:500;not null;index:idx_favorites_user_desc,unique" json:"description"`
	Category    string    `gorm:"size:20" json:"category"`
	DefaultTime string    `gorm:"size:5" json:"default_time"`
	UsageCount  int       `gorm:"not null;default:0" json:"usage_count"`
	LastUsed    string    `gorm:"size:10" json:"last_used"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *FavoriteFood) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
