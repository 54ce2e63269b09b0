package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostelcore/internal/backup"
	"hostelcore/internal/blob"
	"hostelcore/pkg/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string             `json:"error"`
	Kind       domain.ErrorKind   `json:"kind"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// statusOf maps an error to its HTTP status and kind.
func statusOf(err error) (int, domain.ErrorKind) {
	switch {
	case errors.Is(err, blob.ErrNotFound):
		return http.StatusNotFound, domain.KindNotFound
	case errors.Is(err, blob.ErrExists):
		return http.StatusConflict, domain.KindConflict
	case errors.Is(err, backup.ErrInvalidArchive), errors.Is(err, blob.ErrInvalidKey):
		return http.StatusBadRequest, domain.KindValidation
	}
	switch kind := domain.KindOf(err); kind {
	case domain.KindNotFound:
		return http.StatusNotFound, kind
	case domain.KindConflict:
		return http.StatusConflict, kind
	case domain.KindValidation:
		return http.StatusBadRequest, kind
	default:
		return http.StatusInternalServerError, domain.KindInternal
	}
}

func (s *server) fail(c *gin.Context, err error) {
	status, kind := statusOf(err)
	body := ErrorResponse{Error: err.Error(), Kind: kind}
	var blocked domain.RuleViolationError
	if errors.As(err, &blocked) {
		body.Violations = blocked.Result.Violations
	}
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		body.Error = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, body)
}

// badRequest reports a malformed request that never reached the service.
func (s *server) badRequest(c *gin.Context, field string, err error) {
	s.fail(c, domain.ErrValidation{Field: field, Reason: err.Error()})
}
