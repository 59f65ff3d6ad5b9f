package services

import (
	"errors"
	"fmt"

	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrAdminRequired        = errors.New("only admins can create tasks")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrInvalidTaskAssignee  = errors.New("responsible person or tag does not exist")
)

// ValidationError carries the field errors of a rejected task.
type ValidationError struct {
	Fields []*models.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid task"
	}
	return "invalid task: " + e.Fields[0].Error()
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// UpdateTaskInput is a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Priority *models.Priority
	Status   *models.TaskStatus
}

// ListTasks returns every task in creation order
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListOpenTasksFor returns the non-completed tasks a user is responsible for
func (s *TaskService) ListOpenTasksFor(userID string) ([]models.Task, error) {
	completed := models.TaskStatusCompleted
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		Responsible:   &userID,
		ExcludeStatus: &completed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for %s: %w", userID, err)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask stores a new task on behalf of an admin
func (s *TaskService) CreateTask(actor models.User, input models.NewTaskInput) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	task, fieldErrs := models.NewTask(input)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	ids := []string{task.Responsible}
	if task.Tag != task.Responsible {
		ids = append(ids, task.Tag)
	}
	count, err := s.userRepo.CountByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(ids) {
		return nil, ErrInvalidTaskAssignee
	}

	if err := s.taskRepo.Create(&task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// UpdateTask applies a partial update after re-checking the edit policy
func (s *TaskService) UpdateTask(actor models.User, id string, input UpdateTaskInput) (*models.Task, error) {
	var fieldErrs []*models.FieldError
	if input.Priority != nil && !input.Priority.Valid() {
		fieldErrs = append(fieldErrs, &models.FieldError{Field: "priority", Err: models.ErrInvalidPriority})
	}
	if input.Status != nil && !input.Status.Valid() {
		fieldErrs = append(fieldErrs, &models.FieldError{Field: "status", Err: models.ErrInvalidStatus})
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if !models.CanEdit(actor, *task) {
		return nil, ErrTaskPermissionDenied
	}

	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}
