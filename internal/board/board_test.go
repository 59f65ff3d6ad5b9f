package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskzen/taskzen/internal/models"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func task(id, responsible string, start, end time.Time, status models.TaskStatus) models.Task {
	return models.Task{
		ID:          id,
		Outcome:     "outcome " + id,
		Priority:    models.PriorityMedium,
		Responsible: responsible,
		Tag:         "u9",
		StartDate:   start,
		EndDate:     end,
		Status:      status,
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

var (
	admin = models.User{ID: "u1", Role: models.RoleAdmin}
	user2 = models.User{ID: "u2", Role: models.RoleUser}
	today = day(time.January, 5)
)

func fixture() []models.Task {
	return []models.Task{
		task("a", "u1", day(time.January, 1), day(time.January, 10), models.TaskStatusAssigned),
		task("b", "u2", day(time.January, 1), day(time.January, 10), models.TaskStatusAssigned),
		task("c", "u2", day(time.January, 8), day(time.January, 12), models.TaskStatusAssigned),
		task("d", "u2", day(time.January, 1), day(time.January, 3), models.TaskStatusAssigned),
		task("e", "u3", day(time.January, 1), day(time.January, 2), models.TaskStatusCompleted),
		task("f", "u2", day(time.January, 2), day(time.January, 6), models.TaskStatusInProgress),
		task("g", "u3", day(time.January, 1), day(time.January, 4), models.TaskStatusInProgress),
	}
}

func TestProject_AdminSeesEveryone(t *testing.T) {
	b := Project(fixture(), admin, today)

	assert.Equal(t, []string{"c"}, ids(b.Assigned))
	assert.Equal(t, []string{"a", "b", "f"}, ids(b.InProgress))
	assert.Equal(t, []string{"e"}, ids(b.Completed))
}

func TestProject_UserSeesOnlyOwnTasks(t *testing.T) {
	b := Project(fixture(), user2, today)

	assert.Equal(t, []string{"c"}, ids(b.Assigned))
	assert.Equal(t, []string{"b", "f"}, ids(b.InProgress))
	assert.Empty(t, b.Completed)

	for _, bucket := range [][]models.Task{b.Assigned, b.InProgress, b.Completed} {
		for _, tk := range bucket {
			assert.Equal(t, "u2", tk.Responsible)
			assert.NotEqual(t, models.EffectiveBacklog, tk.EffectiveStatus(today))
		}
	}
}

func TestProject_NeverIncludesBacklog(t *testing.T) {
	b := Project(fixture(), admin, today)

	all := append(append(ids(b.Assigned), ids(b.InProgress)...), ids(b.Completed)...)
	assert.NotContains(t, all, "d")
	assert.NotContains(t, all, "g")
	assert.Len(t, all, 5)
}

func TestProject_EmptyInputYieldsEmptyBuckets(t *testing.T) {
	b := Project(nil, user2, today)

	require.NotNil(t, b.Assigned)
	require.NotNil(t, b.InProgress)
	require.NotNil(t, b.Completed)
	assert.Empty(t, b.Assigned)
}

func TestProject_UserWithoutTasks(t *testing.T) {
	b := Project(fixture(), models.User{ID: "nobody", Role: models.RoleUser}, today)

	assert.Empty(t, b.Assigned)
	assert.Empty(t, b.InProgress)
	assert.Empty(t, b.Completed)
}

func TestBacklog(t *testing.T) {
	assert.Equal(t, []string{"d", "g"}, ids(Backlog(fixture(), today)))
	assert.Empty(t, Backlog(fixture(), day(time.January, 1)))
}

func TestResponsible(t *testing.T) {
	assert.Equal(t, []string{"b", "c", "d", "f"}, ids(Responsible(fixture(), "u2")))
}

func TestNotices(t *testing.T) {
	tasks := []models.Task{
		task("s", "u2", day(time.January, 5), day(time.January, 9), models.TaskStatusAssigned),
		task("d", "u2", day(time.January, 1), day(time.January, 5), models.TaskStatusAssigned),
		task("both", "u2", day(time.January, 5), day(time.January, 5), models.TaskStatusAssigned),
		task("done", "u2", day(time.January, 5), day(time.January, 5), models.TaskStatusCompleted),
		task("other", "u3", day(time.January, 5), day(time.January, 5), models.TaskStatusAssigned),
	}

	notices := Notices(tasks, "u2", today)

	require.Len(t, notices, 4)
	assert.Equal(t, Notice{
		Kind:        NoticeStartingToday,
		TaskID:      "s",
		Title:       "Task Starting Today",
		Description: `Your task "outcome s" is scheduled to start today.`,
	}, notices[0])
	assert.Equal(t, NoticeDueToday, notices[1].Kind)
	assert.Equal(t, "d", notices[1].TaskID)
	assert.Equal(t, []NoticeKind{NoticeStartingToday, NoticeDueToday}, []NoticeKind{notices[2].Kind, notices[3].Kind})
}

// Completed tasks stay quiet even when they start or end today.
func TestNotices_CompletedTasksRaiseNothing(t *testing.T) {
	tasks := []models.Task{
		task("starts", "u2", day(time.January, 5), day(time.January, 9), models.TaskStatusCompleted),
		task("due", "u2", day(time.January, 1), day(time.January, 5), models.TaskStatusCompleted),
	}

	assert.Empty(t, Notices(tasks, "u2", today))

	tasks[1].Status = models.TaskStatusInProgress
	notices := Notices(tasks, "u2", today)
	require.Len(t, notices, 1)
	assert.Equal(t, "due", notices[0].TaskID)
}
