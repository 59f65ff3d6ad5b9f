package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/apiclient"
	"github.com/taskzen/taskzen/internal/board"
	"github.com/taskzen/taskzen/internal/dto"
	"github.com/taskzen/taskzen/internal/models"
	"golang.org/x/sync/errgroup"
)

// viewerAndTasks fetches the signed-in user and every task concurrently.
func (s *Server) viewerAndTasks(c *gin.Context) (models.User, []models.Task, error) {
	return s.fetchViewerAndTasks(c.Request.Context(), s.client(c))
}

func (s *Server) fetchViewerAndTasks(ctx context.Context, client *apiclient.Client) (models.User, []models.Task, error) {
	g, ctx := errgroup.WithContext(ctx)

	var viewer models.User
	var tasks []models.Task
	g.Go(func() error {
		var err error
		viewer, err = client.Me(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = client.ListTasks(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.User{}, nil, err
	}
	return viewer, tasks, nil
}

// Board returns the viewer's kanban projection
func (s *Server) Board(c *gin.Context) {
	viewer, tasks, err := s.viewerAndTasks(c)
	if err != nil {
		respondAPIError(c, err)
		return
	}

	today := s.now()
	c.JSON(http.StatusOK, dto.ToBoardDTO(board.Project(tasks, viewer, today), viewer, today))
}

// Backlog returns every overdue task
func (s *Server) Backlog(c *gin.Context) {
	viewer, tasks, err := s.viewerAndTasks(c)
	if err != nil {
		respondAPIError(c, err)
		return
	}

	today := s.now()
	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToBoardTaskDTOs(board.Backlog(tasks, today), viewer, today),
	})
}

// Notifications returns today's start and due reminders for the viewer
func (s *Server) Notifications(c *gin.Context) {
	viewer, tasks, err := s.viewerAndTasks(c)
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": board.Notices(tasks, viewer.ID, s.now()),
	})
}

// Team returns the roster
func (s *Server) Team(c *gin.Context) {
	users, err := s.client(c).ListUsers(c.Request.Context())
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToUserDTOs(users),
	})
}

// TeamMember returns one member with the tasks they are responsible for
func (s *Server) TeamMember(c *gin.Context) {
	id := c.Param("id")
	client := s.client(c)
	g, ctx := errgroup.WithContext(c.Request.Context())

	var member models.User
	g.Go(func() error {
		var err error
		member, err = client.GetUser(ctx, id)
		return err
	})

	var (
		viewer models.User
		tasks  []models.Task
	)
	g.Go(func() error {
		var err error
		viewer, tasks, err = s.fetchViewerAndTasks(ctx, client)
		return err
	})

	if err := g.Wait(); err != nil {
		respondAPIError(c, err)
		return
	}

	today := s.now()
	c.JSON(http.StatusOK, dto.TeamMemberDTO{
		UserDTO: dto.ToUserDTO(member),
		Tasks:   dto.ToBoardTaskDTOs(board.Responsible(tasks, member.ID), viewer, today),
	})
}
