package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/pkg/response"
)

// HTTPError is a client-safe message paired with the status it renders with.
type HTTPError struct {
	Message string
	Status  int
}

func NewHTTPError(message string, status int) *HTTPError {
	return &HTTPError{Message: message, Status: status}
}

func ServerErrorHTTP(message string) *HTTPError {
	return &HTTPError{Message: message, Status: http.StatusInternalServerError}
}

func BadRequest(message string) *HTTPError {
	return &HTTPError{Message: message, Status: http.StatusBadRequest}
}

func UniqueConstraintViolation(message string) *HTTPError {
	return &HTTPError{Message: message, Status: http.StatusConflict}
}

func Unauthorized(message string) *HTTPError {
	return &HTTPError{Message: message, Status: http.StatusUnauthorized}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HttpError: message: %s, status: %d", e.Message, e.Status)
}

// FromError maps err onto an HTTPError. Domain errors keep their message;
// anything else is logged and replaced with the generic server error.
func FromError(err error, logger *logrus.Logger) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	var de *Error
	if errors.As(err, &de) {
		return &HTTPError{Message: de.Error(), Status: de.Status()}
	}
	if logger != nil && err != nil {
		logger.WithError(err).Error("unhandled error converted to server error")
	}
	return ServerErrorHTTP(New(ServerError).Error())
}

// Render writes the failure envelope for e. Statuses outside the known set
// are logged and rendered as a generic 500.
func (e *HTTPError) Render(c *gin.Context, logger *logrus.Logger) {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict, http.StatusInternalServerError:
		response.Error(c, e.Status, response.StatusFail, e.Message, nil)
	default:
		if logger != nil {
			logger.WithField("status", e.Status).Warn("missing status mapping, rendering as 500")
		}
		response.Error(c, http.StatusInternalServerError, response.StatusError, New(ServerError).Error(), nil)
	}
}

// Abort is the handler-side shortcut: map err and render it.
func Abort(c *gin.Context, err error, logger *logrus.Logger) {
	FromError(err, logger).Render(c, logger)
}
