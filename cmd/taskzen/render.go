package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/taskzen/taskzen/internal/board"
	"github.com/taskzen/taskzen/internal/constants"
	"github.com/taskzen/taskzen/internal/models"
)

func renderUser(w io.Writer, user models.User) {
	fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(w, "  Role:         %s\n", user.Role)
	fmt.Fprintf(w, "  Availability: %s\n", user.Availability)
	if len(user.Skills) > 0 {
		fmt.Fprintf(w, "  Skills:       %s\n", strings.Join(user.Skills, ", "))
	}
}

func renderBoard(w io.Writer, b board.Board, viewer models.User) error {
	columns := []struct {
		title string
		tasks []models.Task
	}{
		{"ASSIGNED", b.Assigned},
		{"IN PROGRESS", b.InProgress},
		{"COMPLETED", b.Completed},
	}

	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", col.title, len(col.tasks))
		if err := renderTasks(w, col.tasks, viewer); err != nil {
			return err
		}
	}
	return nil
}

// renderTasks prints one row per task. Tasks viewer may edit are starred.
func renderTasks(w io.Writer, tasks []models.Task, viewer models.User) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range tasks {
		mark := " "
		if models.CanEdit(viewer, t) {
			mark = "*"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s..%s\t%s\n",
			mark,
			t.Priority,
			t.Outcome,
			t.StartDate.UTC().Format(constants.DateLayout),
			t.EndDate.UTC().Format(constants.DateLayout),
			t.ID,
		)
	}
	return tw.Flush()
}
