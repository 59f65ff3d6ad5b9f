package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/constants"
	apierrors "github.com/taskzen/taskzen/internal/errors"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/services"
)

// RequireBearer authenticates the Authorization: Bearer header against the
// token store and puts the caller in the context.
func RequireBearer(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.Authenticate(token)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				log.Printf("Failed to authenticate token: %v", err)
				apierrors.InternalError(c, "")
				c.Abort()
				return
			}
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyToken, token)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

// RequireAdmin rejects callers that are not admins. It must run after
// RequireBearer.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok || !user.IsAdmin() {
			apierrors.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSession checks that the web session holds an API token and exposes
// it to handlers.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
		if token == "" {
			apierrors.SessionExpired(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyToken, token)
		c.Next()
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// GetToken retrieves the bearer token of the current request
func GetToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeyToken)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
