package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/models"
	"github.com/IditAvrahami/TabBuddy/services"
	"github.com/IditAvrahami/TabBuddy/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type scheduleReq struct {
	DrugID            uint    `json:"drug_id" binding:"required"`
	DependencyType    string  `json:"dependency_type" binding:"required,oneof=independent absolute meal drug"`
	FrequencyPerDay   int     `json:"frequency_per_day"`
	StartDate         string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate           *string `json:"end_date"`
	AbsoluteTime      *string `json:"absolute_time"` // HH:MM[:SS]
	MealScheduleID    *uint   `json:"meal_schedule_id"`
	MealOffsetMinutes *int    `json:"meal_offset_minutes"`
	MealTiming        string  `json:"meal_timing" binding:"omitempty,oneof=before after"`
	DependsOnDrugID   *uint   `json:"depends_on_drug_id"`
	DrugOffsetMinutes *int    `json:"drug_offset_minutes"`
}

func (req *scheduleReq) toParams() (services.ScheduleParams, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return services.ScheduleParams{}, errors.New("invalid start_date, expected YYYY-MM-DD")
	}

	p := services.ScheduleParams{
		DrugID:            req.DrugID,
		DependencyType:    models.DependencyType(req.DependencyType),
		FrequencyPerDay:   req.FrequencyPerDay,
		StartDate:         start,
		MealScheduleID:    req.MealScheduleID,
		MealOffsetMinutes: req.MealOffsetMinutes,
		MealTiming:        req.MealTiming,
		DependsOnDrugID:   req.DependsOnDrugID,
		DrugOffsetMinutes: req.DrugOffsetMinutes,
	}

	if req.EndDate != nil && *req.EndDate != "" {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return services.ScheduleParams{}, errors.New("invalid end_date, expected YYYY-MM-DD")
		}
		p.EndDate = &end
	}
	if req.AbsoluteTime != nil && *req.AbsoluteTime != "" {
		clock, err := utils.ParseClock(*req.AbsoluteTime)
		if err != nil {
			return services.ScheduleParams{}, err
		}
		normalized := utils.FormatClock(clock)
		p.AbsoluteTime = &normalized
	}
	return p, nil
}

func scheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrScheduleNotFound),
		errors.Is(err, services.ErrDrugNotFound),
		errors.Is(err, services.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /schedules
func CreateSchedule(c *gin.Context) {
	var req scheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.toParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewScheduleService(config.DB, config.Logger)
	sched, err := svc.Create(params)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// GET /schedules
func GetSchedules(c *gin.Context) {
	svc := services.NewScheduleService(config.DB, config.Logger)
	scheds, err := svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scheds)
}

// GET /schedules/:id
func GetSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	svc := services.NewScheduleService(config.DB, config.Logger)
	sched, err := svc.Get(uint(id))
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// PUT /schedules/:id — editing the absolute time clears upcoming overrides
func UpdateSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var req scheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params, err := req.toParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewScheduleService(config.DB, config.Logger)
	sched, err := svc.Update(uint(id), params)
	if err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// DELETE /schedules/:id
func DeleteSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	svc := services.NewScheduleService(config.DB, config.Logger)
	if err := svc.Delete(uint(id)); err != nil {
		scheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
