package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/dto"
	apierrors "github.com/taskzen/taskzen/internal/errors"
	"github.com/taskzen/taskzen/internal/middleware"
	"github.com/taskzen/taskzen/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	now         func() time.Time
}

// NewTaskHandler creates a TaskHandler. now supplies "today" for creation
// defaults.
func NewTaskHandler(taskService *services.TaskService, now func() time.Time) *TaskHandler {
	if now == nil {
		now = time.Now
	}
	return &TaskHandler{
		taskService: taskService,
		now:         now,
	}
}

// ListTasks returns every task in creation order
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns the task loaded by the LoadTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask stores a new task. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	input, fieldErrs := req.ToInput(h.now())
	if len(fieldErrs) > 0 {
		apierrors.BadRequestWithDetails(c, "Invalid task", apierrors.FieldErrors(fieldErrs))
		return
	}

	task, err := h.taskService.CreateTask(user, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial {priority?, status?} update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	updated, err := h.taskService.UpdateTask(user, task.ID, services.UpdateTaskInput{
		Priority: req.Priority,
		Status:   req.Status,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, "Invalid task", apierrors.FieldErrors(verr.Fields))
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAdminRequired):
		apierrors.Forbidden(c, "Only admins can create tasks")
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, "You can only edit tasks you are responsible for")
	case errors.Is(err, services.ErrInvalidTaskAssignee):
		apierrors.BadRequestWithDetails(c, "Invalid task", gin.H{"responsible": err.Error()})
	default:
		log.Printf("Task operation failed: %v", err)
		apierrors.InternalError(c, "")
	}
}
