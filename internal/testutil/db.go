// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskzen/taskzen/internal/database"
	"github.com/taskzen/taskzen/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test.
// The pool is pinned to one connection so every query sees the same memory
// database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))
	return db
}

// Password is the plaintext password of every user created by CreateUser.
const Password = "supersecret"

// CreateUser inserts a user whose password is Password.
func CreateUser(t *testing.T, db *gorm.DB, name, email string, role models.Role, skills ...string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Availability: "Full-time",
		Skills:       skills,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a task for responsible spanning start..end.
func CreateTask(t *testing.T, db *gorm.DB, outcome, responsible string, start, end time.Time, status models.TaskStatus) *models.Task {
	t.Helper()

	task := &models.Task{
		Outcome:     outcome,
		Priority:    models.PriorityMedium,
		Responsible: responsible,
		Tag:         responsible,
		StartDate:   models.NormalizeDate(start),
		EndDate:     models.NormalizeDate(end),
		Status:      status,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
