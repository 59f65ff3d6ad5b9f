package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/dto"
	apierrors "github.com/taskzen/taskzen/internal/errors"
	"github.com/taskzen/taskzen/internal/services"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// ListUsers returns the roster
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a single user
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.authService.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		log.Printf("Failed to get user: %v", err)
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Register creates a regular user account
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Availability: req.Availability,
		Skills:       req.Skills,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequestWithDetails(c, "Invalid request body", gin.H{"password": "password must be at least 8 characters"})
		case errors.Is(err, services.ErrNameRequired):
			apierrors.BadRequestWithDetails(c, "Invalid request body", gin.H{"name": "name is required"})
		case errors.Is(err, services.ErrEmailRequired):
			apierrors.BadRequestWithDetails(c, "Invalid request body", gin.H{"email": "email is required"})
		default:
			log.Printf("Registration failed: %v", err)
			apierrors.InternalError(c, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}
