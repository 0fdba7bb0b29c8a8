// services/schedule_service.go
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
	ErrDrugNotFound = errors.New("drug not found")
	ErrMealNotFound = errors.New("meal schedule not found")
)

// ScheduleParams carries the already-parsed fields for creating or updating
// a dosing schedule. Clock strings are normalized "HH:MM:SS".
type ScheduleParams struct {
	DrugID            uint
	DependencyType    models.DependencyType
	FrequencyPerDay   int
	StartDate         time.Time
	EndDate           *time.Time
	AbsoluteTime      *string
	MealScheduleID    *uint
	MealOffsetMinutes *int
	MealTiming        string
	DependsOnDrugID   *uint
	DrugOffsetMinutes *int
}

type ScheduleService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func NewScheduleService(db *gorm.DB, log *zap.SugaredLogger) *ScheduleService {
	return &ScheduleService{db: db, log: log, now: time.Now}
}

func (s *ScheduleService) Create(p ScheduleParams) (*models.DrugSchedule, error) {
	if err := s.checkRefs(p); err != nil {
		return nil, err
	}

	sched := models.DrugSchedule{
		DrugID:            p.DrugID,
		DependencyType:    p.DependencyType,
		FrequencyPerDay:   p.FrequencyPerDay,
		StartDate:         utils.DateOf(p.StartDate),
		EndDate:           p.EndDate,
		IsActive:          true,
		AbsoluteTime:      p.AbsoluteTime,
		MealScheduleID:    p.MealScheduleID,
		MealOffsetMinutes: p.MealOffsetMinutes,
		MealTiming:        p.MealTiming,
		DependsOnDrugID:   p.DependsOnDrugID,
		DrugOffsetMinutes: p.DrugOffsetMinutes,
	}
	if sched.FrequencyPerDay <= 0 {
		sched.FrequencyPerDay = 1
	}
	if sched.EndDate != nil {
		d := utils.DateOf(*sched.EndDate)
		sched.EndDate = &d
	}
	if err := s.db.Create(&sched).Error; err != nil {
		return nil, err
	}

	var populated models.DrugSchedule
	if err := s.db.Preload("Drug").Preload("MealSchedule").First(&populated, sched.ID).Error; err != nil {
		return nil, err
	}
	s.log.Infof("created schedule %d for drug %d (%s)", populated.ID, populated.DrugID, populated.DependencyType)
	return &populated, nil
}

func (s *ScheduleService) Get(id uint) (*models.DrugSchedule, error) {
	var sched models.DrugSchedule
	err := s.db.Preload("Drug").Preload("MealSchedule").First(&sched, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *ScheduleService) List() ([]models.DrugSchedule, error) {
	var scheds []models.DrugSchedule
	err := s.db.Preload("Drug").Preload("MealSchedule").Order("id").Find(&scheds).Error
	return scheds, err
}

// Update applies the new field values and, when the absolute time actually
// changed, clears today-and-future overrides so stale snoozes cannot
// suppress or mistime the edited schedule.
func (s *ScheduleService) Update(id uint, p ScheduleParams) (*models.DrugSchedule, error) {
	var sched models.DrugSchedule
	err := s.db.First(&sched, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(p); err != nil {
		return nil, err
	}

	oldTime := sched.AbsoluteTime

	sched.DrugID = p.DrugID
	sched.DependencyType = p.DependencyType
	if p.FrequencyPerDay > 0 {
		sched.FrequencyPerDay = p.FrequencyPerDay
	}
	sched.StartDate = utils.DateOf(p.StartDate)
	sched.EndDate = p.EndDate
	if sched.EndDate != nil {
		d := utils.DateOf(*sched.EndDate)
		sched.EndDate = &d
	}
	sched.AbsoluteTime = p.AbsoluteTime
	sched.MealScheduleID = p.MealScheduleID
	sched.MealOffsetMinutes = p.MealOffsetMinutes
	sched.MealTiming = p.MealTiming
	sched.DependsOnDrugID = p.DependsOnDrugID
	sched.DrugOffsetMinutes = p.DrugOffsetMinutes

	if err := s.db.Save(&sched).Error; err != nil {
		return nil, err
	}

	if err := s.HandleScheduleTimeEdited(sched.ID, oldTime, sched.AbsoluteTime); err != nil {
		return nil, err
	}

	var populated models.DrugSchedule
	if err := s.db.Preload("Drug").Preload("MealSchedule").First(&populated, sched.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func (s *ScheduleService) Delete(id uint) error {
	var sched models.DrugSchedule
	err := s.db.First(&sched, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrScheduleNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.Unscoped().
		Where("schedule_id = ?", sched.ID).
		Delete(&models.NotificationOverride{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&sched).Error
}

// HandleScheduleTimeEdited clears today-and-future overrides for the
// schedule when its absolute time changed. No-op edits keep overrides.
func (s *ScheduleService) HandleScheduleTimeEdited(scheduleID uint, oldTime, newTime *string) error {
	if clockEqual(oldTime, newTime) {
		return nil
	}
	today := utils.DateOf(s.now())
	res := s.db.Unscoped().
		Where("schedule_id = ? AND override_date >= ?", scheduleID, today).
		Delete(&models.NotificationOverride{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Infof("schedule %d time edited, cleared %d upcoming override(s)", scheduleID, res.RowsAffected)
	}
	return nil
}

func (s *ScheduleService) checkRefs(p ScheduleParams) error {
	var drug models.Drug
	if err := s.db.First(&drug, p.DrugID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDrugNotFound
		}
		return err
	}
	if p.DependencyType == models.DependencyMeal && p.MealScheduleID != nil {
		var meal models.MealSchedule
		if err := s.db.First(&meal, *p.MealScheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMealNotFound
			}
			return err
		}
	}
	return nil
}

func clockEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
