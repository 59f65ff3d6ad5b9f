package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/apiclient"
	apierrors "github.com/taskzen/taskzen/internal/errors"
)

// respondAPIError maps a failed task API call to a dashboard response. The
// session has already been cleared when the API answered 401.
func respondAPIError(c *gin.Context, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		apierrors.SessionExpired(c)
		return
	}

	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		log.Printf("Task API unreachable: %v", err)
		apierrors.BadGateway(c, "")
		return
	}

	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		apierrors.BadRequestWithDetails(c, apiErr.Message, apiErr.Details)
	case http.StatusForbidden:
		apierrors.Forbidden(c, apiErr.Message)
	case http.StatusNotFound:
		apierrors.NotFound(c, apiErr.Message)
	case http.StatusConflict:
		apierrors.Conflict(c, apiErr.Message)
	default:
		log.Printf("Task API error: %v", apiErr)
		apierrors.BadGateway(c, "")
	}
}
