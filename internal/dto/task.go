package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskzen/taskzen/internal/constants"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/utils"
)

// TaskDTO represents a task on the wire. Dates are calendar dates
// formatted as YYYY-MM-DD.
type TaskDTO struct {
	ID          string            `json:"id"`
	Outcome     string            `json:"outcome"`
	Priority    models.Priority   `json:"priority"`
	Responsible string            `json:"responsible"`
	Tag         string            `json:"tag"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Status      models.TaskStatus `json:"status"`
}

// CreateTaskRequest is the body of a task creation. Priority and dates are
// optional; the creation flow fills in defaults.
type CreateTaskRequest struct {
	Outcome     string `json:"outcome" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Responsible string `json:"responsible" binding:"required"`
	Tag         string `json:"tag" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ErrInvalidDate reports a date that is neither YYYY-MM-DD nor RFC 3339
var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// ToInput fills in creation defaults and parses the request into a domain
// input. An omitted priority is medium, an omitted start date is today and
// an omitted end date is a week after the start.
func (r CreateTaskRequest) ToInput(today time.Time) (models.NewTaskInput, []*models.FieldError) {
	var errs []*models.FieldError

	priority := models.Priority(strings.TrimSpace(r.Priority))
	if priority == "" {
		priority = models.PriorityMedium
	}

	start := models.NormalizeDate(today)
	if strings.TrimSpace(r.StartDate) != "" {
		parsed, err := utils.ParseDate(r.StartDate)
		if err != nil {
			errs = append(errs, &models.FieldError{Field: "startDate", Err: ErrInvalidDate})
		} else {
			start = parsed
		}
	}

	end := start.Add(constants.DefaultTaskDuration)
	if strings.TrimSpace(r.EndDate) != "" {
		parsed, err := utils.ParseDate(r.EndDate)
		if err != nil {
			errs = append(errs, &models.FieldError{Field: "endDate", Err: ErrInvalidDate})
		} else {
			end = parsed
		}
	}

	return models.NewTaskInput{
		Outcome:     r.Outcome,
		Priority:    priority,
		Responsible: r.Responsible,
		Tag:         r.Tag,
		StartDate:   start,
		EndDate:     end,
	}, errs
}

// FromInput renders a validated input as the request sent to the task API
func FromInput(input models.NewTaskInput) CreateTaskRequest {
	return CreateTaskRequest{
		Outcome:     input.Outcome,
		Priority:    string(input.Priority),
		Responsible: input.Responsible,
		Tag:         input.Tag,
		StartDate:   input.StartDate.UTC().Format(constants.DateLayout),
		EndDate:     input.EndDate.UTC().Format(constants.DateLayout),
	}
}

// UpdateTaskRequest is the partial update accepted by the task API
type UpdateTaskRequest struct {
	Priority *models.Priority   `json:"priority,omitempty"`
	Status   *models.TaskStatus `json:"status,omitempty"`
}

// EditTaskRequest is the edit the dashboard submits
type EditTaskRequest struct {
	Priority  *models.Priority `json:"priority,omitempty"`
	Completed *bool            `json:"completed,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Outcome:     task.Outcome,
		Priority:    task.Priority,
		Responsible: task.Responsible,
		Tag:         task.Tag,
		StartDate:   task.StartDate.UTC().Format(constants.DateLayout),
		EndDate:     task.EndDate.UTC().Format(constants.DateLayout),
		Status:      task.Status,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	result := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, ToTaskDTO(t))
	}
	return result
}

// ToModel converts a TaskDTO received from the task API back to a model
func (d TaskDTO) ToModel() (models.Task, error) {
	start, err := utils.ParseDate(d.StartDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %s start date: %w", d.ID, err)
	}
	end, err := utils.ParseDate(d.EndDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %s end date: %w", d.ID, err)
	}

	return models.Task{
		ID:          d.ID,
		Outcome:     d.Outcome,
		Priority:    d.Priority,
		Responsible: d.Responsible,
		Tag:         d.Tag,
		StartDate:   start,
		EndDate:     end,
		Status:      d.Status,
	}, nil
}

// ToTaskModels converts a task list received from the task API
func ToTaskModels(dtos []TaskDTO) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(dtos))
	for _, d := range dtos {
		task, err := d.ToModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
