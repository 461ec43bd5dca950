package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/domain"
)

// statusFor maps a domain error kind onto an HTTP status.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindMissingID, domain.KindDuplicateEmail, domain.KindAuthentication:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).
			WithField("path", c.FullPath()).
			Error("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
