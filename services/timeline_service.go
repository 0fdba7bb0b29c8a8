// services/timeline_service.go
package services

import (
	"sort"
	"time"

	"github.com/IditAvrahami/TabBuddy/models"
	"github.com/IditAvrahami/TabBuddy/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultReminderClock is used whenever a schedule's time source is missing
// or malformed. Data gaps degrade to this, never to an error.
const DefaultReminderClock = "09:00:00"

// Inclusion window around "now" for the due-now feed, in seconds.
// Tuned for short-interval polling: due within the last minute, or up to
// five seconds early.
const (
	dueWindowPastSeconds   = 60.0
	dueWindowFutureSeconds = 5.0
)

// TimelineItem is one due reminder in the daily feed.
type TimelineItem struct {
	ScheduleID     uint      `json:"schedule_id"`
	DrugID         uint      `json:"drug_id"`
	DrugName       string    `json:"drug_name"`
	Kind           string    `json:"kind"`
	AmountPerDose  int       `json:"amount_per_dose"`
	DependencyType string    `json:"dependency_type"`
	ScheduledTime  time.Time `json:"scheduled_time"`
}

type TimelineService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func NewTimelineService(db *gorm.DB, log *zap.SugaredLogger) *TimelineService {
	return &TimelineService{db: db, log: log, now: time.Now}
}

// CalculateDailyTimeline computes the reminders ready to show right now for
// the given calendar date. Poll-driven and idempotent: calling it twice with
// no intervening writes returns the same result.
func (s *TimelineService) CalculateDailyTimeline(date time.Time) ([]TimelineItem, error) {
	day := utils.DateOf(date)

	var schedules []models.DrugSchedule
	err := s.db.
		Preload("Drug").
		Preload("MealSchedule").
		Where("start_date <= ? AND (end_date >= ? OR end_date IS NULL)", day, day).
		Where("is_active = ?", true).
		Order("id").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	now := s.now()
	timeline := make([]TimelineItem, 0, len(schedules))
	drugTimes := make(map[uint]time.Time) // resolved time per owning drug, this pass

	for i := range schedules {
		sched := &schedules[i]

		calculated := s.resolveScheduleTime(sched, day, drugTimes)
		drugTimes[sched.DrugID] = calculated

		ov, err := latestOverride(s.db, sched.ID, day)
		if err != nil {
			return nil, err
		}
		if ov != nil {
			if ov.Dismissed {
				continue
			}
			if ov.SnoozedUntil != nil {
				calculated = *ov.SnoozedUntil
			}
		}

		diff := calculated.Sub(now).Seconds()
		if diff < -dueWindowPastSeconds || diff > dueWindowFutureSeconds {
			continue
		}

		timeline = append(timeline, TimelineItem{
			ScheduleID:     sched.ID,
			DrugID:         sched.DrugID,
			DrugName:       sched.Drug.Name,
			Kind:           sched.Drug.Kind,
			AmountPerDose:  sched.Drug.AmountPerDose,
			DependencyType: string(sched.DependencyType),
			ScheduledTime:  calculated,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].ScheduledTime.Before(timeline[j].ScheduledTime)
	})

	// each drug at most once per poll, earliest time wins
	seen := make(map[uint]bool)
	unique := make([]TimelineItem, 0, len(timeline))
	for _, item := range timeline {
		if seen[item.DrugID] {
			continue
		}
		seen[item.DrugID] = true
		unique = append(unique, item)
	}

	s.log.Infof("timeline for %s: %d schedules, %d due now", day.Format("2006-01-02"), len(schedules), len(unique))
	return unique, nil
}

// resolveScheduleTime derives a schedule's concrete due time for the day.
// Drug dependencies consult only drugTimes, the cache of siblings resolved
// earlier in this same pass; a miss falls back to the default rather than
// recursing.
func (s *TimelineService) resolveScheduleTime(sched *models.DrugSchedule, day time.Time, drugTimes map[uint]time.Time) time.Time {
	switch sched.DependencyType {
	case models.DependencyAbsolute:
		if sched.AbsoluteTime == nil {
			return defaultReminderTime(day)
		}
		t, err := utils.CombineDateClock(day, *sched.AbsoluteTime)
		if err != nil {
			return defaultReminderTime(day)
		}
		return t

	case models.DependencyMeal:
		if sched.MealSchedule == nil || sched.MealOffsetMinutes == nil {
			return defaultReminderTime(day)
		}
		base, err := utils.CombineDateClock(day, sched.MealSchedule.BaseTime)
		if err != nil {
			return defaultReminderTime(day)
		}
		offset := time.Duration(*sched.MealOffsetMinutes) * time.Minute
		if sched.MealTiming == models.MealTimingBefore {
			return base.Add(-offset)
		}
		return base.Add(offset)

	case models.DependencyDrug:
		if sched.DependsOnDrugID != nil {
			if base, ok := drugTimes[*sched.DependsOnDrugID]; ok {
				if sched.DrugOffsetMinutes == nil {
					return base
				}
				return base.Add(time.Duration(*sched.DrugOffsetMinutes) * time.Minute)
			}
		}
		// dependency not resolved yet in this pass
		return defaultReminderTime(day)

	default: // independent or unrecognized
		return defaultReminderTime(day)
	}
}

func defaultReminderTime(day time.Time) time.Time {
	t, _ := utils.CombineDateClock(day, DefaultReminderClock)
	return t
}
