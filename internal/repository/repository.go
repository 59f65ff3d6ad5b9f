package repository

import (
	"time"

	"github.com/taskzen/taskzen/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List retrieves tasks matching filter in creation order
	List(filter TaskFilter) ([]models.Task, error)

	// Update saves every field of a task
	Update(task *models.Task) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Responsible   *string
	ExcludeStatus *models.TaskStatus
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns every user ordered by name
	List() ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []string) (int64, error)
}

// TokenRepository defines the interface for bearer token storage
type TokenRepository interface {
	// Create stores a newly issued token
	Create(token *models.AccessToken) error

	// Find looks a token up with its user preloaded
	Find(token string) (*models.AccessToken, error)

	// Delete revokes a token
	Delete(token string) error

	// DeleteExpired removes tokens that expired before now
	DeleteExpired(now time.Time) (int64, error)
}
