package models

import (
	"gorm.io/gorm"
)

// One Drug (aspirin/vitamin D/…); schedules hang off it
type Drug struct {
	gorm.Model
	Name          string `gorm:"uniqueIndex;not null" json:"name"`
	Kind          string `gorm:"not null" json:"kind"` // "pill"|"liquid"
	AmountPerDose int    `gorm:"not null" json:"amount_per_dose"`
	Duration      int    `json:"duration"` // days
	AmountPerDay  int    `json:"amount_per_day"`

	Schedules []DrugSchedule `gorm:"constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
}
