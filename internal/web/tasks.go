package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/advisor"
	"github.com/taskzen/taskzen/internal/dto"
	apierrors "github.com/taskzen/taskzen/internal/errors"
	"github.com/taskzen/taskzen/internal/models"
	"golang.org/x/sync/errgroup"
)

// CreateTask validates a new task locally and then submits it. Invalid
// input never reaches the task API.
func (s *Server) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	today := s.now()
	input, fieldErrs := req.ToInput(today)
	if len(fieldErrs) > 0 {
		apierrors.BadRequestWithDetails(c, "Invalid task", apierrors.FieldErrors(fieldErrs))
		return
	}
	validated, fieldErrs := models.NewTask(input)
	if len(fieldErrs) > 0 {
		apierrors.BadRequestWithDetails(c, "Invalid task", apierrors.FieldErrors(fieldErrs))
		return
	}

	client := s.client(c)
	task, err := client.CreateTask(c.Request.Context(), dto.FromInput(models.NewTaskInput{
		Outcome:     validated.Outcome,
		Priority:    validated.Priority,
		Responsible: validated.Responsible,
		Tag:         validated.Tag,
		StartDate:   validated.StartDate,
		EndDate:     validated.EndDate,
	}))
	if err != nil {
		respondAPIError(c, err)
		return
	}

	viewer, err := client.Me(c.Request.Context())
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardTaskDTO(task, viewer, today))
}

// EditTask changes priority and/or toggles completion of a task the viewer
// may edit
func (s *Server) EditTask(c *gin.Context) {
	var req dto.EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		apierrors.BadRequestWithDetails(c, "Invalid task", gin.H{"priority": models.ErrInvalidPriority.Error()})
		return
	}

	id := c.Param("id")
	client := s.client(c)
	g, ctx := errgroup.WithContext(c.Request.Context())

	var viewer models.User
	var task models.Task
	g.Go(func() error {
		var err error
		viewer, err = client.Me(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		task, err = client.GetTask(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		respondAPIError(c, err)
		return
	}

	if !models.CanEdit(viewer, task) {
		apierrors.Forbidden(c, "You can only edit tasks you are responsible for")
		return
	}

	edited := models.ApplyEdit(task, models.TaskEdit{
		Priority:  req.Priority,
		Completed: req.Completed,
	})

	update := dto.UpdateTaskRequest{Priority: req.Priority}
	if req.Completed != nil {
		update.Status = &edited.Status
	}

	updated, err := client.UpdateTask(c.Request.Context(), id, update)
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardTaskDTO(updated, viewer, s.now()))
}

// SuggestAssignee asks the advisor to pick an assignee from the roster. The
// answer is advisory; nothing is stored.
func (s *Server) SuggestAssignee(c *gin.Context) {
	if s.advisor == nil {
		apierrors.ServiceUnavailable(c, "Assignee suggestions are not configured")
		return
	}

	var req dto.SuggestAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	users, err := s.client(c).ListUsers(c.Request.Context())
	if err != nil {
		respondAPIError(c, err)
		return
	}

	candidates := make([]advisor.Candidate, 0, len(users))
	for _, u := range users {
		candidates = append(candidates, advisor.Candidate{
			UserID:       u.ID,
			Role:         string(u.Role),
			Availability: u.Availability,
			Skills:       u.Skills,
		})
	}

	suggestion, err := s.advisor.Suggest(c.Request.Context(), req.TaskDescription, candidates)
	if err != nil {
		if errors.Is(err, advisor.ErrInvalidInput) {
			apierrors.BadRequest(c, "A task description and at least one team member are required")
			return
		}
		log.Printf("Assignee suggestion failed: %v", err)
		apierrors.AdvisorFailed(c)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
