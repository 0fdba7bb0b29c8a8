package controllers

import (
	"net/http"

	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/models"
	"github.com/IditAvrahami/TabBuddy/utils"

	"github.com/gin-gonic/gin"
)

type mealCreateReq struct {
	MealName string `json:"meal_name" binding:"required"`
	BaseTime string `json:"base_time" binding:"required"` // HH:MM
}

type mealUpdateReq struct {
	BaseTime string `json:"base_time" binding:"required"`
}

// GET /meal-schedules
func GetMealSchedules(c *gin.Context) {
	var meals []models.MealSchedule
	if err := config.DB.Order("id").Find(&meals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// POST /meal-schedules
func CreateMealSchedule(c *gin.Context) {
	var req mealCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.MealSchedule
	if err := config.DB.Where("meal_name = ?", req.MealName).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal schedule already exists"})
		return
	}

	clock, err := utils.ParseClock(req.BaseTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.MealSchedule{
		MealName: req.MealName,
		BaseTime: utils.FormatClock(clock),
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	config.Logger.Infof("created meal schedule %d (%s at %s)", meal.ID, meal.MealName, meal.BaseTime)
	c.JSON(http.StatusCreated, meal)
}

// PUT /meal-schedules/:name — only the base time is mutable
func UpdateMealSchedule(c *gin.Context) {
	var req mealUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var meal models.MealSchedule
	if err := config.DB.Where("meal_name = ?", c.Param("name")).First(&meal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal schedule not found"})
		return
	}

	clock, err := utils.ParseClock(req.BaseTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal.BaseTime = utils.FormatClock(clock)
	if err := config.DB.Save(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /meal-schedules/:name — dependent drug schedules go with it
func DeleteMealSchedule(c *gin.Context) {
	var meal models.MealSchedule
	if err := config.DB.Where("meal_name = ?", c.Param("name")).First(&meal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal schedule not found"})
		return
	}

	var scheduleIDs []uint
	if err := config.DB.Model(&models.DrugSchedule{}).
		Where("meal_schedule_id = ?", meal.ID).
		Pluck("id", &scheduleIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(scheduleIDs) > 0 {
		if err := config.DB.Unscoped().
			Where("schedule_id IN ?", scheduleIDs).
			Delete(&models.NotificationOverride{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := config.DB.Where("meal_schedule_id = ?", meal.ID).
			Delete(&models.DrugSchedule{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if err := config.DB.Delete(&meal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}
