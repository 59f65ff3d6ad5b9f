package services

import (
	"fmt"
	"log"
	"time"

	"github.com/taskzen/taskzen/internal/board"
	"github.com/taskzen/taskzen/internal/models"
)

// Digest is the set of reminders produced for one user.
type Digest struct {
	User    models.User
	Notices []board.Notice
}

// ReminderService builds the daily start/due digest for every user.
type ReminderService struct {
	authService *AuthService
	taskService *TaskService
	now         func() time.Time
}

// NewReminderService creates a ReminderService whose "today" comes from now.
func NewReminderService(authService *AuthService, taskService *TaskService, now func() time.Time) *ReminderService {
	if now == nil {
		now = time.Now
	}
	return &ReminderService{
		authService: authService,
		taskService: taskService,
		now:         now,
	}
}

// Digests returns one digest per user with at least one notice today.
func (s *ReminderService) Digests() ([]Digest, error) {
	users, err := s.authService.ListUsers()
	if err != nil {
		return nil, err
	}

	today := s.now()
	digests := []Digest{}
	for _, user := range users {
		tasks, err := s.taskService.ListOpenTasksFor(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to build digest: %w", err)
		}
		notices := board.Notices(tasks, user.ID, today)
		if len(notices) == 0 {
			continue
		}
		digests = append(digests, Digest{User: user, Notices: notices})
	}
	return digests, nil
}

// Run logs today's digests. It is the body of the scheduled reminder job.
func (s *ReminderService) Run() {
	digests, err := s.Digests()
	if err != nil {
		log.Printf("Reminder job failed: %v", err)
		return
	}

	for _, d := range digests {
		for _, n := range d.Notices {
			log.Printf("Reminder for %s <%s>: %s - %s", d.User.Name, d.User.Email, n.Title, n.Description)
		}
	}
	log.Printf("Reminder job finished: %d user(s) notified", len(digests))
}
