package board

import (
	"fmt"
	"time"

	"github.com/taskzen/taskzen/internal/models"
)

type NoticeKind string

const (
	NoticeStartingToday NoticeKind = "starting_today"
	NoticeDueToday      NoticeKind = "due_today"
)

// Notice is a reminder about one of the viewer's tasks.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	TaskID      string     `json:"taskId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// Notices lists the reminders for userID as of today: one for each of their
// tasks that starts today and one for each that is due today. Completed
// tasks produce none.
func Notices(tasks []models.Task, userID string, today time.Time) []Notice {
	notices := []Notice{}
	for _, task := range Responsible(tasks, userID) {
		if task.Status == models.TaskStatusCompleted {
			continue
		}
		if sameCivilDate(task.StartDate, today) {
			notices = append(notices, Notice{
				Kind:        NoticeStartingToday,
				TaskID:      task.ID,
				Title:       "Task Starting Today",
				Description: fmt.Sprintf("Your task %q is scheduled to start today.", task.Outcome),
			})
		}
		if sameCivilDate(task.EndDate, today) {
			notices = append(notices, Notice{
				Kind:        NoticeDueToday,
				TaskID:      task.ID,
				Title:       "Task Due Today",
				Description: fmt.Sprintf("Your task %q is due today.", task.Outcome),
			})
		}
	}
	return notices
}

func sameCivilDate(stored, today time.Time) bool {
	return models.SameDay(stored.UTC(), today)
}
