package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/dto"
	apierrors "github.com/taskzen/taskzen/internal/errors"
	"github.com/taskzen/taskzen/internal/middleware"
	"github.com/taskzen/taskzen/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token exchanges password credentials for a bearer token. It accepts the
// OAuth2 password grant as a form post as well as a JSON body.
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}
	if req.GrantType != "" && req.GrantType != "password" {
		apierrors.BadRequest(c, "Unsupported grant type")
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c)
			return
		}
		log.Printf("Login failed: %v", err)
		apierrors.InternalError(c, "Failed to log in")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(token.ExpiresAt).Seconds()),
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// Logout revokes the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(middleware.GetToken(c)); err != nil {
		log.Printf("Logout failed: %v", err)
		apierrors.InternalError(c, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
