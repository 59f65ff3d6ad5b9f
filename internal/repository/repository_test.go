package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTaskRepository_ListKeepsCreationOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)

	first := testutil.CreateTask(t, db, "first", "u1", day(time.January, 1), day(time.January, 2), models.TaskStatusAssigned)
	second := testutil.CreateTask(t, db, "second", "u2", day(time.January, 1), day(time.January, 2), models.TaskStatusCompleted)
	third := testutil.CreateTask(t, db, "third", "u1", day(time.January, 1), day(time.January, 2), models.TaskStatusInProgress)

	tasks, err := repo.List(TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})

	responsible := "u1"
	tasks, err = repo.List(TaskFilter{Responsible: &responsible})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	completed := models.TaskStatusCompleted
	tasks, err = repo.List(TaskFilter{ExcludeStatus: &completed})
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, third.ID}, []string{tasks[0].ID, tasks[1].ID})
}

func TestTaskRepository_DatesRoundTripAsCivilDates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)

	created := testutil.CreateTask(t, db, "dates", "u1", day(time.January, 1), day(time.January, 10), models.TaskStatusAssigned)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.True(t, models.SameDay(found.StartDate.UTC(), day(time.January, 1)))
	assert.True(t, models.SameDay(found.EndDate.UTC(), day(time.January, 10)))
	assert.Equal(t, models.EffectiveInProgress, found.EffectiveStatus(day(time.January, 10)))
}

func TestTaskRepository_FindByIDNotFound(t *testing.T) {
	repo := NewTaskRepository(testutil.NewDB(t))

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com", models.RoleUser, "go", "sql")
	testutil.CreateUser(t, db, "Alice", "alice@example.com", models.RoleAdmin)

	found, err := repo.FindByEmail("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)
	assert.Equal(t, []string{"go", "sql"}, found.Skills)

	users, err := repo.List()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)

	count, err := repo.CountByIDs([]string{bob.ID, "ghost"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTokenRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTokenRepository(db)
	user := testutil.CreateUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	now := time.Now()

	require.NoError(t, repo.Create(&models.AccessToken{Token: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(&models.AccessToken{Token: "stale", UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}))

	token, err := repo.Find("live")
	require.NoError(t, err)
	assert.Equal(t, "Bob", token.User.Name)

	removed, err := repo.DeleteExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, repo.Delete("live"))
	_, err = repo.Find("live")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestTaskRepository_PropagatesQueryErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	boom := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT (.+) FROM `tasks`").WillReturnError(boom)

	_, err := repo.List(TaskFilter{})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_UpdateRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	boom := errors.New("deadlock found")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.Update(&models.Task{ID: "t1", Outcome: "x", Status: models.TaskStatusCompleted})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
