package routes

import (
	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/controllers"
	"github.com/IditAvrahami/TabBuddy/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.RequestLoggerMiddleware(config.Logger))

	drugs := r.Group("/drugs")
	{
		drugs.POST("", controllers.AddDrug)
		drugs.GET("", controllers.GetDrugs)
		drugs.PUT("/:id", controllers.UpdateDrug)
		drugs.DELETE("/:id", controllers.DeleteDrug)
	}

	meals := r.Group("/meal-schedules")
	{
		meals.GET("", controllers.GetMealSchedules)
		meals.POST("", controllers.CreateMealSchedule)
		meals.PUT("/:name", controllers.UpdateMealSchedule)
		meals.DELETE("/:name", controllers.DeleteMealSchedule)
	}

	schedules := r.Group("/schedules")
	{
		schedules.POST("", controllers.CreateSchedule)
		schedules.GET("", controllers.GetSchedules)
		schedules.GET("/:id", controllers.GetSchedule)
		schedules.PUT("/:id", controllers.UpdateSchedule)
		schedules.DELETE("/:id", controllers.DeleteSchedule)
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", controllers.GetNotifications)
		notifications.POST("/:id/snooze", controllers.SnoozeNotification)
		notifications.POST("/:id/dismiss", controllers.DismissNotification)
	}

	return r
}
