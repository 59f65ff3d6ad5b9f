package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/apiclient"
	"github.com/taskzen/taskzen/internal/dto"
	apierrors "github.com/taskzen/taskzen/internal/errors"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login signs in against the task API and keeps the token in the session
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	client := s.client(c)
	if _, err := client.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, apiclient.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c)
			return
		}
		respondAPIError(c, err)
		return
	}

	user, err := client.Me(c.Request.Context())
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// Register creates an account through the task API
func (s *Server) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := s.client(c).Register(c.Request.Context(), req)
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(user))
}

// Logout revokes the token and clears the session
func (s *Server) Logout(c *gin.Context) {
	if err := s.client(c).Logout(c.Request.Context()); err != nil {
		// The session is cleared either way.
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the signed-in user
func (s *Server) Me(c *gin.Context) {
	user, err := s.client(c).Me(c.Request.Context())
	if err != nil {
		respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}
