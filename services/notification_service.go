// services/notification_service.go
package services

import (
	"errors"
	"time"

	"github.com/IditAvrahami/TabBuddy/models"
	"github.com/IditAvrahami/TabBuddy/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrSnoozeUnsupported = errors.New("snooze supported only for absolute schedules")
)

// DefaultSnoozeMinutes is applied when a snooze request carries no duration.
const DefaultSnoozeMinutes = 10

// A snooze whose target is further than this in the past is considered
// stale (clock skew, long-idle client) and is discarded on the next snooze.
const snoozeStaleAfter = 24 * time.Hour

type NotificationService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func NewNotificationService(db *gorm.DB, log *zap.SugaredLogger) *NotificationService {
	return &NotificationService{db: db, log: log, now: time.Now}
}

// latestOverride returns the current override for (scheduleID, date), or nil
// when none exists. Highest id wins if legacy duplicate rows are present.
func latestOverride(db *gorm.DB, scheduleID uint, date time.Time) (*models.NotificationOverride, error) {
	var ov models.NotificationOverride
	err := db.
		Where("schedule_id = ? AND override_date = ?", scheduleID, utils.DateOf(date)).
		Order("id DESC").
		First(&ov).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// Snooze pushes today's reminder for the schedule forward by the given
// number of minutes and returns the new effective time. Snoozes compound:
// the base is an existing non-stale snooze if there is one, otherwise the
// schedule's own absolute time for today.
func (s *NotificationService) Snooze(scheduleID uint, minutes int) (time.Time, error) {
	var sched models.DrugSchedule
	err := s.db.Where("id = ? AND is_active = ?", scheduleID, true).First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, ErrScheduleNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	if sched.DependencyType != models.DependencyAbsolute || sched.AbsoluteTime == nil {
		return time.Time{}, ErrSnoozeUnsupported
	}

	now := s.now()
	today := utils.DateOf(now)

	existing, err := latestOverride(s.db, sched.ID, today)
	if err != nil {
		return time.Time{}, err
	}

	var base time.Time
	if existing != nil && existing.SnoozedUntil != nil {
		if existing.SnoozedUntil.Before(now.Add(-snoozeStaleAfter)) {
			// Overrides are cleared when absolute_time is edited, so a snooze
			// this far in the past means stale data. Drop it and restart from
			// the scheduled time.
			s.log.Warnf("stale snooze for schedule %d (snoozed_until=%s), resetting", sched.ID, existing.SnoozedUntil)
			if err := s.db.Unscoped().Delete(existing).Error; err != nil {
				return time.Time{}, err
			}
			existing = nil
			base = absoluteTimeForDay(&sched, today)
		} else {
			base = *existing.SnoozedUntil
		}
	} else {
		base = absoluteTimeForDay(&sched, today)
	}

	if minutes < 1 {
		minutes = 1
	}
	snoozedUntil := base.Add(time.Duration(minutes) * time.Minute)

	if existing != nil {
		existing.SnoozedUntil = &snoozedUntil
		existing.Dismissed = false
		existing.CreatedAt = now
		if err := s.db.Save(existing).Error; err != nil {
			return time.Time{}, err
		}
	} else {
		ov := models.NotificationOverride{
			ScheduleID:   sched.ID,
			OverrideDate: today,
			SnoozedUntil: &snoozedUntil,
		}
		if err := s.db.Create(&ov).Error; err != nil {
			return time.Time{}, err
		}
	}

	s.log.Infof("snoozed schedule %d until %s", sched.ID, snoozedUntil)
	return snoozedUntil, nil
}

// Dismiss suppresses today's reminder for the schedule. A later snooze on
// the same date supersedes it (last write wins).
func (s *NotificationService) Dismiss(scheduleID uint) error {
	var sched models.DrugSchedule
	err := s.db.Where("id = ? AND is_active = ?", scheduleID, true).First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrScheduleNotFound
	}
	if err != nil {
		return err
	}

	now := s.now()
	today := utils.DateOf(now)

	existing, err := latestOverride(s.db, sched.ID, today)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Dismissed = true
		existing.SnoozedUntil = nil
		existing.CreatedAt = now
		if err := s.db.Save(existing).Error; err != nil {
			return err
		}
	} else {
		ov := models.NotificationOverride{
			ScheduleID:   sched.ID,
			OverrideDate: today,
			Dismissed:    true,
		}
		if err := s.db.Create(&ov).Error; err != nil {
			return err
		}
	}

	s.log.Infof("dismissed schedule %d for %s", sched.ID, today.Format("2006-01-02"))
	return nil
}

func absoluteTimeForDay(sched *models.DrugSchedule, day time.Time) time.Time {
	t, err := utils.CombineDateClock(day, *sched.AbsoluteTime)
	if err != nil {
		return defaultReminderTime(day)
	}
	return t
}
