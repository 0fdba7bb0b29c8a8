package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/services"

	"github.com/gin-gonic/gin"
)

type snoozeReq struct {
	Minutes *int `json:"minutes"`
}

// GET /notifications — reminders due right now; designed for polling
func GetNotifications(c *gin.Context) {
	svc := services.NewTimelineService(config.DB, config.Logger)
	items, err := svc.CalculateDailyTimeline(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /notifications/:id/snooze
func SnoozeNotification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var req snoozeReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minutes := services.DefaultSnoozeMinutes
	if req.Minutes != nil {
		minutes = *req.Minutes
	}

	svc := services.NewNotificationService(config.DB, config.Logger)
	snoozedUntil, err := svc.Snooze(uint(id), minutes)
	switch {
	case errors.Is(err, services.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrSnoozeUnsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "snoozed",
		"snoozed_until": snoozedUntil,
	})
}

// POST /notifications/:id/dismiss
func DismissNotification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	svc := services.NewNotificationService(config.DB, config.Logger)
	err = svc.Dismiss(uint(id))
	switch {
	case errors.Is(err, services.ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dismissed"})
}
