// Package board groups tasks into the views the dashboard renders: the
// three-column kanban projection, the overdue list and the day's notices.
package board

import (
	"time"

	"github.com/taskzen/taskzen/internal/models"
)

// Board is the kanban projection for a single viewer.
type Board struct {
	Assigned   []models.Task
	InProgress []models.Task
	Completed  []models.Task
}

// Visible returns the tasks viewer is allowed to see on the board: every
// task for admins, otherwise only the tasks the viewer is responsible for.
func Visible(tasks []models.Task, viewer models.User) []models.Task {
	if viewer.IsAdmin() {
		return tasks
	}
	visible := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Responsible == viewer.ID {
			visible = append(visible, task)
		}
	}
	return visible
}

// Project classifies the tasks visible to viewer as of today. Backlog tasks
// are left out; each bucket keeps the input order.
func Project(tasks []models.Task, viewer models.User, today time.Time) Board {
	b := Board{
		Assigned:   []models.Task{},
		InProgress: []models.Task{},
		Completed:  []models.Task{},
	}

	for _, task := range Visible(tasks, viewer) {
		switch task.EffectiveStatus(today) {
		case models.EffectiveAssigned:
			b.Assigned = append(b.Assigned, task)
		case models.EffectiveInProgress:
			b.InProgress = append(b.InProgress, task)
		case models.EffectiveCompleted:
			b.Completed = append(b.Completed, task)
		}
	}

	return b
}

// Backlog returns the tasks that are past due and not completed, in input
// order.
func Backlog(tasks []models.Task, today time.Time) []models.Task {
	overdue := []models.Task{}
	for _, task := range tasks {
		if task.EffectiveStatus(today) == models.EffectiveBacklog {
			overdue = append(overdue, task)
		}
	}
	return overdue
}

// Responsible returns the tasks assigned to userID, in input order.
func Responsible(tasks []models.Task, userID string) []models.Task {
	owned := []models.Task{}
	for _, task := range tasks {
		if task.Responsible == userID {
			owned = append(owned, task)
		}
	}
	return owned
}
