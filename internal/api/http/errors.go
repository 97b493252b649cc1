package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  domain.Kind `json:"code"`
	Field string      `json:"field,omitempty"`
}

// StatusFor maps an error kind onto an HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindReference:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError logs err under op and writes the tagged error body.
// Store failures are reported with a generic message.
func RespondError(c *gin.Context, log *logrus.Entry, op string, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)

	entry := log.WithFields(logrus.Fields{
		"op":         op,
		"code":       kind,
		"status":     status,
		"request_id": c.GetString("request_id"),
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error(op + ": request failed")
	} else {
		entry.WithError(err).Warn(op + ": request rejected")
	}

	body := ErrorResponse{Error: err.Error(), Code: kind}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Field = ve.Field
	}
	if kind == domain.KindStore {
		body.Error = "internal error"
	}
	c.AbortWithStatusJSON(status, body)
}

// BindJSON decodes the request body into dst and reports a malformed body
// as a validation error.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domain.InvalidCause("body", "invalid request body", err)
	}
	return nil
}

// PathID parses the named path parameter as a positive id.
func PathID(c *gin.Context, name string) (int64, error) {
	return domain.ParseID(name, c.Param(name))
}
