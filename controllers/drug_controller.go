package controllers

import (
	"net/http"
	"strconv"

	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/models"

	"github.com/gin-gonic/gin"
)

type drugReq struct {
	Name          string `json:"name" binding:"required"`
	Kind          string `json:"kind" binding:"required,oneof=pill liquid"`
	AmountPerDose int    `json:"amount_per_dose" binding:"required"`
	Duration      int    `json:"duration"`
	AmountPerDay  int    `json:"amount_per_day"`
}

// POST /drugs
func AddDrug(c *gin.Context) {
	var req drugReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Drug
	if err := config.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "drug already exists"})
		return
	}

	drug := models.Drug{
		Name:          req.Name,
		Kind:          req.Kind,
		AmountPerDose: req.AmountPerDose,
		Duration:      req.Duration,
		AmountPerDay:  req.AmountPerDay,
	}
	if err := config.DB.Create(&drug).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	config.Logger.Infof("created drug %d (%s)", drug.ID, drug.Name)
	c.JSON(http.StatusCreated, drug)
}

// GET /drugs
func GetDrugs(c *gin.Context) {
	var drugs []models.Drug
	if err := config.DB.Order("id").Find(&drugs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, drugs)
}

// PUT /drugs/:id
func UpdateDrug(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid drug id"})
		return
	}

	var req drugReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var drug models.Drug
	if err := config.DB.First(&drug, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "drug not found"})
		return
	}

	if req.Name != drug.Name {
		var existing models.Drug
		if err := config.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "drug already exists"})
			return
		}
	}

	drug.Name = req.Name
	drug.Kind = req.Kind
	drug.AmountPerDose = req.AmountPerDose
	drug.Duration = req.Duration
	drug.AmountPerDay = req.AmountPerDay
	if err := config.DB.Save(&drug).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, drug)
}

// DELETE /drugs/:id — removes the drug with its schedules and their overrides
func DeleteDrug(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid drug id"})
		return
	}

	var drug models.Drug
	if err := config.DB.First(&drug, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "drug not found"})
		return
	}

	var scheduleIDs []uint
	if err := config.DB.Model(&models.DrugSchedule{}).
		Where("drug_id = ?", drug.ID).
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
		if err := config.DB.Where("drug_id = ?", drug.ID).
			Delete(&models.DrugSchedule{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if err := config.DB.Delete(&drug).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	config.Logger.Infof("deleted drug %d (%s)", drug.ID, drug.Name)
	c.JSON(http.StatusOK, gin.H{"message": "deleted " + drug.Name})
}
