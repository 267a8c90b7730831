package controllers

import (
	"errors"
	"net/http"

	"campusmatch/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError owns the service-error to status-code mapping so the
// services never touch HTTP.
func handleServiceError(c *gin.Context, err error) {
	var dup *services.DuplicateFieldError
	var cred *services.CredentialError

	switch {
	case errors.Is(err, services.ErrSelfSwipe),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrPhotoLimit),
		errors.Is(err, services.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrTokenInvalid):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrDuplicateSwipe),
		errors.Is(err, services.ErrCredentialTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": dup.Error(), "field": dup.Field})

	case errors.As(err, &cred):
		status := http.StatusForbidden
		if cred.External {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": cred.Message, "reason": cred.Reason})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentUserID reads the id the auth middleware stored in the context.
func currentUserID(c *gin.Context) uint {
	id, _ := c.Get("userID")
	uid, _ := id.(uint)
	return uid
}
