package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/taskzen/taskzen/internal/board"
	"github.com/taskzen/taskzen/internal/constants"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/repository"
	"github.com/taskzen/taskzen/internal/testutil"
	"gorm.io/gorm"
)

type ServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	authService *AuthService
	taskService *TaskService
	admin       *models.User
	bob         *models.User
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	suite.authService = NewAuthService(userRepo, repository.NewTokenRepository(suite.db), time.Hour)
	suite.taskService = NewTaskService(repository.NewTaskRepository(suite.db), userRepo)

	suite.admin = testutil.CreateUser(suite.T(), suite.db, "Alice", "alice@example.com", models.RoleAdmin)
	suite.bob = testutil.CreateUser(suite.T(), suite.db, "Bob", "bob@example.com", models.RoleUser, "go")
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func (suite *ServiceTestSuite) newInput(responsible string) models.NewTaskInput {
	return models.NewTaskInput{
		Outcome:     "Ship the release",
		Priority:    models.PriorityHigh,
		Responsible: responsible,
		Tag:         suite.admin.ID,
		StartDate:   day(1),
		EndDate:     day(10),
	}
}

func (suite *ServiceTestSuite) TestRegister_DefaultsAndRole() {
	user, err := suite.authService.Register(RegisterInput{
		Name:     " Carol ",
		Email:    "Carol@Example.com",
		Password: "longenough",
	})

	suite.Require().NoError(err)
	suite.Equal("Carol", user.Name)
	suite.Equal("carol@example.com", user.Email)
	suite.Equal(models.RoleUser, user.Role)
	suite.Equal(constants.DefaultAvailability, user.Availability)
	suite.Empty(user.Skills)
	suite.NotEqual("longenough", user.PasswordHash)
}

func (suite *ServiceTestSuite) TestRegister_Rejections() {
	_, err := suite.authService.Register(RegisterInput{Name: "Dup", Email: "bob@example.com", Password: "longenough"})
	suite.ErrorIs(err, ErrEmailTaken)

	_, err = suite.authService.Register(RegisterInput{Name: "Short", Email: "s@example.com", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)

	_, err = suite.authService.Register(RegisterInput{Email: "n@example.com", Password: "longenough"})
	suite.ErrorIs(err, ErrNameRequired)
}

func (suite *ServiceTestSuite) TestLoginAuthenticateLogout() {
	token, err := suite.authService.Login("BOB@example.com", testutil.Password)
	suite.Require().NoError(err)
	suite.Len(token.Token, 64)

	user, err := suite.authService.Authenticate(token.Token)
	suite.Require().NoError(err)
	suite.Equal(suite.bob.ID, user.ID)

	suite.Require().NoError(suite.authService.Logout(token.Token))
	_, err = suite.authService.Authenticate(token.Token)
	suite.ErrorIs(err, ErrInvalidToken)
}

func (suite *ServiceTestSuite) TestLogin_WrongPassword() {
	_, err := suite.authService.Login("bob@example.com", "wrong-password")
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.authService.Login("nobody@example.com", testutil.Password)
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *ServiceTestSuite) TestAuthenticate_ExpiredToken() {
	token, err := suite.authService.Login("bob@example.com", testutil.Password)
	suite.Require().NoError(err)

	suite.authService.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = suite.authService.Authenticate(token.Token)
	suite.ErrorIs(err, ErrInvalidToken)

	purged, err := suite.authService.PurgeExpiredTokens()
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)
}

func (suite *ServiceTestSuite) TestEnsureAdmin_Idempotent() {
	first, err := suite.authService.EnsureAdmin("Root", "root@example.com", "rootpassword")
	suite.Require().NoError(err)
	suite.Equal(models.RoleAdmin, first.Role)

	second, err := suite.authService.EnsureAdmin("Root", "root@example.com", "rootpassword")
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
}

func (suite *ServiceTestSuite) TestCreateTask_AdminOnly() {
	_, err := suite.taskService.CreateTask(*suite.bob, suite.newInput(suite.bob.ID))
	suite.ErrorIs(err, ErrAdminRequired)

	task, err := suite.taskService.CreateTask(*suite.admin, suite.newInput(suite.bob.ID))
	suite.Require().NoError(err)
	suite.NotEmpty(task.ID)
	suite.Equal(models.TaskStatusAssigned, task.Status)
}

func (suite *ServiceTestSuite) TestCreateTask_ValidationAndUnknownUsers() {
	input := suite.newInput(suite.bob.ID)
	input.EndDate = day(0)
	_, err := suite.taskService.CreateTask(*suite.admin, input)

	var verr *ValidationError
	suite.Require().True(errors.As(err, &verr))
	suite.Equal("endDate", verr.Fields[0].Field)

	_, err = suite.taskService.CreateTask(*suite.admin, suite.newInput("ghost"))
	suite.ErrorIs(err, ErrInvalidTaskAssignee)
}

func (suite *ServiceTestSuite) TestUpdateTask_PolicyIsRechecked() {
	task := testutil.CreateTask(suite.T(), suite.db, "Admin work", suite.admin.ID, day(1), day(10), models.TaskStatusAssigned)
	completed := models.TaskStatusCompleted

	_, err := suite.taskService.UpdateTask(*suite.bob, task.ID, UpdateTaskInput{Status: &completed})
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	stored, err := suite.taskService.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusAssigned, stored.Status)
}

func (suite *ServiceTestSuite) TestUpdateTask_ResponsibleCanEditPartially() {
	task := testutil.CreateTask(suite.T(), suite.db, "Bob work", suite.bob.ID, day(1), day(10), models.TaskStatusAssigned)
	low := models.PriorityLow

	updated, err := suite.taskService.UpdateTask(*suite.bob, task.ID, UpdateTaskInput{Priority: &low})
	suite.Require().NoError(err)
	suite.Equal(models.PriorityLow, updated.Priority)
	suite.Equal(models.TaskStatusAssigned, updated.Status)
}

func (suite *ServiceTestSuite) TestUpdateTask_InvalidValuesAndMissingTask() {
	bogus := models.TaskStatus("done")
	_, err := suite.taskService.UpdateTask(*suite.admin, "whatever", UpdateTaskInput{Status: &bogus})
	var verr *ValidationError
	suite.True(errors.As(err, &verr))

	_, err = suite.taskService.UpdateTask(*suite.admin, "missing", UpdateTaskInput{})
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestReminderDigests() {
	testutil.CreateTask(suite.T(), suite.db, "Starts", suite.bob.ID, day(5), day(9), models.TaskStatusAssigned)
	testutil.CreateTask(suite.T(), suite.db, "Due", suite.bob.ID, day(1), day(5), models.TaskStatusInProgress)
	testutil.CreateTask(suite.T(), suite.db, "Done", suite.bob.ID, day(5), day(5), models.TaskStatusCompleted)
	testutil.CreateTask(suite.T(), suite.db, "Later", suite.admin.ID, day(6), day(9), models.TaskStatusAssigned)

	today := time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)
	reminders := NewReminderService(suite.authService, suite.taskService, func() time.Time { return today })

	digests, err := reminders.Digests()
	suite.Require().NoError(err)
	suite.Require().Len(digests, 1)
	suite.Equal(suite.bob.ID, digests[0].User.ID)
	suite.Require().Len(digests[0].Notices, 2)
	suite.Equal(board.NoticeStartingToday, digests[0].Notices[0].Kind)
	suite.Equal(board.NoticeDueToday, digests[0].Notices[1].Kind)

	reminders.Run()
}

func TestDailySpec(t *testing.T) {
	spec, err := DailySpec("08:05")
	if err != nil || spec != "5 8 * * *" {
		t.Fatalf("DailySpec(08:05) = %q, %v", spec, err)
	}

	for _, bad := range []string{"8", "24:00", "07:60", "noon"} {
		if _, err := DailySpec(bad); err == nil {
			t.Errorf("DailySpec(%q) should fail", bad)
		}
	}
}

func TestSchedulerService_Registers(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	if _, err := s.ScheduleDaily("23:59", func() {}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScheduleEvery(time.Hour, func() {}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScheduleEvery(time.Millisecond, func() {}); err == nil {
		t.Fatal("sub-second interval should be rejected")
	}

	if got := len(s.Entries()); got != 2 {
		t.Fatalf("entries = %d, want 2", got)
	}
	s.Start()
	s.Stop()
}
