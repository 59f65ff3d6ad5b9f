// Package web serves the dashboard's JSON API. It holds no data of its own:
// every request is answered by calling the task API with the bearer token
// kept in the visitor's session.
package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/advisor"
	"github.com/taskzen/taskzen/internal/apiclient"
	"github.com/taskzen/taskzen/internal/constants"
	"github.com/taskzen/taskzen/internal/middleware"
)

type Server struct {
	apiURL     string
	advisor    advisor.Advisor
	now        func() time.Time
	httpClient *http.Client
}

// Option configures a Server.
type Option func(*Server)

// WithAdvisor enables assignee suggestions.
func WithAdvisor(a advisor.Advisor) Option {
	return func(s *Server) {
		s.advisor = a
	}
}

// WithClock sets the source of "today". It should return times in the
// dashboard's time zone.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithHTTPClient sets the client used to reach the task API.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Server) {
		s.httpClient = hc
	}
}

// NewServer creates a dashboard server backed by the task API at apiURL.
func NewServer(apiURL string, opts ...Option) *Server {
	s := &Server{
		apiURL:     apiURL,
		now:        time.Now,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router wires the dashboard routes using store for sessions.
func (s *Server) Router(store sessions.Store) *gin.Engine {
	r := gin.Default()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", s.Login)
			auth.POST("/register", s.Register)
			auth.POST("/logout", s.Logout)
			auth.GET("/me", middleware.RequireSession(), s.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireSession())
		{
			protected.GET("/board", s.Board)
			protected.GET("/backlog", s.Backlog)
			protected.GET("/notifications", s.Notifications)
			protected.GET("/team", s.Team)
			protected.GET("/team/:id", s.TeamMember)

			protected.POST("/tasks", s.CreateTask)
			protected.PUT("/tasks/:id", s.EditTask)
			protected.POST("/tasks/suggest-assignee", s.SuggestAssignee)
		}
	}

	return r
}

// client returns an API client bound to the visitor's session.
func (s *Server) client(c *gin.Context) *apiclient.Client {
	return apiclient.New(s.apiURL, newCookieSession(sessions.Default(c)), apiclient.WithHTTPClient(s.httpClient))
}
