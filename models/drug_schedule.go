package models

import (
	"time"

	"gorm.io/gorm"
)

// DependencyType is the closed set of ways a schedule's due time is derived.
type DependencyType string

const (
	DependencyIndependent DependencyType = "independent"
	DependencyAbsolute    DependencyType = "absolute"
	DependencyMeal        DependencyType = "meal"
	DependencyDrug        DependencyType = "drug"
)

// Timing of a meal-dependent dose relative to the meal.
const (
	MealTimingBefore = "before"
	MealTimingAfter  = "after"
)

// DrugSchedule is the central entity: one dosing rule for a drug.
// Exactly one dependency-kind-appropriate source group is populated;
// the resolver tolerates missing sources by falling back to a default.
type DrugSchedule struct {
	gorm.Model
	DrugID uint `gorm:"not null;index" json:"drug_id"`
	Drug   Drug `json:"drug,omitempty"`

	DependencyType  DependencyType `gorm:"not null;default:independent" json:"dependency_type"`
	FrequencyPerDay int            `gorm:"default:1" json:"frequency_per_day"`

	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date"` // nil = open-ended
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	// absolute: fixed time-of-day "HH:MM:SS"
	AbsoluteTime *string `json:"absolute_time"`

	// meal: referenced meal, offset and before/after flag
	MealScheduleID    *uint         `json:"meal_schedule_id"`
	MealSchedule      *MealSchedule `json:"meal_schedule,omitempty"`
	MealOffsetMinutes *int          `json:"meal_offset_minutes"`
	MealTiming        string        `json:"meal_timing"` // "before"|"after"

	// drug: referenced sibling drug and offset applied after its resolved time
	DependsOnDrugID   *uint `json:"depends_on_drug_id"`
	DrugOffsetMinutes *int  `json:"drug_offset_minutes"`

	Overrides []NotificationOverride `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"-"`
}
