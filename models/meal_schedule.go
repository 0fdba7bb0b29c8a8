package models

import (
	"gorm.io/gorm"
)

// A named recurring meal (breakfast/lunch/dinner) with a base wall-clock time.
// BaseTime is stored as "HH:MM:SS" — the store is zone-naive throughout.
type MealSchedule struct {
	gorm.Model
	MealName string `gorm:"uniqueIndex;not null" json:"meal_name"`
	BaseTime string `gorm:"not null" json:"base_time"`

	Schedules []DrugSchedule `gorm:"constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
}
