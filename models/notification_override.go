package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationOverride records a user snooze/dismiss for one schedule on one
// calendar date. One logical row per (ScheduleID, OverrideDate), mutated in
// place; when legacy duplicates exist the highest id wins.
type NotificationOverride struct {
	gorm.Model
	ScheduleID   uint       `gorm:"not null;index" json:"schedule_id"`
	OverrideDate time.Time  `gorm:"not null;index" json:"override_date"`
	SnoozedUntil *time.Time `json:"snoozed_until"`
	Dismissed    bool       `gorm:"default:false" json:"dismissed"`
}
