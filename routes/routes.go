package routes

import (
	"time"

	"taskboard/controllers"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, tasks *services.TaskService, reconciler *services.Reconciler, loc *time.Location) {
	taskController := controllers.NewTaskController(tasks, reconciler, loc)

	api := r.Group("/api/tasks")
	{
		api.GET("", taskController.ListTasks)
		api.GET("/:id", taskController.GetTask)
		api.POST("", taskController.CreateTask)
		api.PUT("/:id", taskController.UpdateTask)
		api.DELETE("/:id", taskController.DeleteTask)
	}

	// Health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
