package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/stegavault/stegavault/internal/api/shared/dto"
	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
)

// respondOK sends a successful result envelope
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, dto.Result{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError sends a failed result envelope with the status chosen from the error
func respondError(c *gin.Context, err error) {
	apiErr := apierrors.FromError(err)
	c.JSON(apiErr.Status, dto.Result{
		Success: false,
		Message: apiErr.Message,
		Error:   apiErr,
	})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondError(c, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	respondError(c, apierrors.NewValidationError(details))
}
