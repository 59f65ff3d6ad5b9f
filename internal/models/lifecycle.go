package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taskzen/taskzen/internal/constants"
)

var (
	ErrOutcomeRequired     = errors.New("outcome is required")
	ErrOutcomeTooLong      = fmt.Errorf("outcome must be at most %d characters", constants.MaxOutcomeLength)
	ErrInvalidPriority     = errors.New("priority must be one of low, medium, high")
	ErrResponsibleRequired = errors.New("responsible person is required")
	ErrTagRequired         = errors.New("tag is required")
	ErrDatesRequired       = errors.New("start and end dates are required")
	ErrEndBeforeStart      = errors.New("end date must be on or after the start date")
	ErrInvalidStatus       = errors.New("status must be one of assigned, in_progress, completed")
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewTaskInput carries the fields an admin supplies when creating a task.
type NewTaskInput struct {
	Outcome     string
	Priority    Priority
	Responsible string
	Tag         string
	StartDate   time.Time
	EndDate     time.Time
}

// NewTask validates input and returns a task in its initial assigned state.
// All field errors are reported, keyed by the JSON field name.
func NewTask(input NewTaskInput) (Task, []*FieldError) {
	var errs []*FieldError

	outcome := strings.TrimSpace(input.Outcome)
	switch {
	case outcome == "":
		errs = append(errs, &FieldError{Field: "outcome", Err: ErrOutcomeRequired})
	case utf8.RuneCountInString(outcome) > constants.MaxOutcomeLength:
		errs = append(errs, &FieldError{Field: "outcome", Err: ErrOutcomeTooLong})
	}
	if !input.Priority.Valid() {
		errs = append(errs, &FieldError{Field: "priority", Err: ErrInvalidPriority})
	}
	if strings.TrimSpace(input.Responsible) == "" {
		errs = append(errs, &FieldError{Field: "responsible", Err: ErrResponsibleRequired})
	}
	if strings.TrimSpace(input.Tag) == "" {
		errs = append(errs, &FieldError{Field: "tag", Err: ErrTagRequired})
	}

	start := NormalizeDate(input.StartDate)
	end := NormalizeDate(input.EndDate)
	if input.StartDate.IsZero() {
		errs = append(errs, &FieldError{Field: "startDate", Err: ErrDatesRequired})
	}
	if input.EndDate.IsZero() {
		errs = append(errs, &FieldError{Field: "endDate", Err: ErrDatesRequired})
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && end.Before(start) {
		errs = append(errs, &FieldError{Field: "endDate", Err: ErrEndBeforeStart})
	}

	if len(errs) > 0 {
		return Task{}, errs
	}

	return Task{
		Outcome:     outcome,
		Priority:    input.Priority,
		Responsible: strings.TrimSpace(input.Responsible),
		Tag:         strings.TrimSpace(input.Tag),
		StartDate:   start,
		EndDate:     end,
		Status:      TaskStatusAssigned,
	}, nil
}

// TaskEdit is the set of changes the edit flow may make. Nil fields are left
// untouched.
type TaskEdit struct {
	Priority  *Priority
	Completed *bool
}

// ApplyEdit returns task with edit applied. Checking completion persists
// completed. Unchecking a completed task persists in_progress regardless of
// the dates; EffectiveStatus reclassifies it on the next read.
func ApplyEdit(task Task, edit TaskEdit) Task {
	if edit.Priority != nil {
		task.Priority = *edit.Priority
	}
	if edit.Completed != nil {
		switch {
		case *edit.Completed:
			task.Status = TaskStatusCompleted
		case task.Status == TaskStatusCompleted:
			task.Status = TaskStatusInProgress
		}
	}
	return task
}
