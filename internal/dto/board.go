package dto

import (
	"time"

	"github.com/taskzen/taskzen/internal/board"
	"github.com/taskzen/taskzen/internal/models"
)

// BoardTaskDTO is a task as the dashboard renders it
type BoardTaskDTO struct {
	TaskDTO
	EffectiveStatus models.EffectiveStatus `json:"effectiveStatus"`
	CanEdit         bool                   `json:"canEdit"`
}

// BoardDTO is the three-column kanban projection
type BoardDTO struct {
	Assigned   []BoardTaskDTO `json:"assigned"`
	InProgress []BoardTaskDTO `json:"inProgress"`
	Completed  []BoardTaskDTO `json:"completed"`
}

// TeamMemberDTO is a roster entry with the tasks they are responsible for
type TeamMemberDTO struct {
	UserDTO
	Tasks []BoardTaskDTO `json:"tasks"`
}

// SuggestAssigneeRequest asks the advisor who should own a task
type SuggestAssigneeRequest struct {
	TaskDescription string `json:"taskDescription" binding:"required"`
}

// ToBoardTaskDTO decorates a task with its effective status and whether
// viewer may edit it
func ToBoardTaskDTO(task models.Task, viewer models.User, today time.Time) BoardTaskDTO {
	return BoardTaskDTO{
		TaskDTO:         ToTaskDTO(task),
		EffectiveStatus: task.EffectiveStatus(today),
		CanEdit:         models.CanEdit(viewer, task),
	}
}

// ToBoardTaskDTOs converts a slice of tasks
func ToBoardTaskDTOs(tasks []models.Task, viewer models.User, today time.Time) []BoardTaskDTO {
	result := make([]BoardTaskDTO, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, ToBoardTaskDTO(t, viewer, today))
	}
	return result
}

// ToBoardDTO converts a projection for viewer
func ToBoardDTO(b board.Board, viewer models.User, today time.Time) BoardDTO {
	return BoardDTO{
		Assigned:   ToBoardTaskDTOs(b.Assigned, viewer, today),
		InProgress: ToBoardTaskDTOs(b.InProgress, viewer, today),
		Completed:  ToBoardTaskDTOs(b.Completed, viewer, today),
	}
}
