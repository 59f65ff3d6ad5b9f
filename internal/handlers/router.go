package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/middleware"
	"github.com/taskzen/taskzen/internal/services"
)

// NewRouter wires the task API routes.
func NewRouter(authService *services.AuthService, taskService *services.TaskService, now func() time.Time) *gin.Engine {
	r := gin.Default()

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	taskHandler := NewTaskHandler(taskService, now)

	requireBearer := middleware.RequireBearer(authService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/token", authHandler.Token)
		auth.GET("/me", requireBearer, authHandler.Me)
		auth.POST("/logout", requireBearer, authHandler.Logout)
	}

	users := r.Group("/users")
	{
		users.POST("/", userHandler.Register)
		users.GET("", requireBearer, userHandler.ListUsers)
		users.GET("/:id", requireBearer, userHandler.GetUser)
	}

	tasks := r.Group("/tasks")
	tasks.Use(requireBearer)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
		tasks.GET("/:id", middleware.LoadTask(taskService), taskHandler.GetTask)
		tasks.PUT("/:id", middleware.LoadTask(taskService), taskHandler.UpdateTask)
	}

	return r
}
