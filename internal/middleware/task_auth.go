package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/constants"
	apierrors "github.com/taskzen/taskzen/internal/errors"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/services"
)

// LoadTask resolves the :id path parameter to a task and stores it in the
// context.
func LoadTask(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := taskService.GetTask(c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				log.Printf("Failed to load task %s: %v", c.Param("id"), err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by LoadTask
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
