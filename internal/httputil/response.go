// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hajjcare/accounts/internal/errors"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Name       string            `json:"name"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// errorKind describes how one error kind is presented to clients.
type errorKind struct {
	status         int
	name           string
	defaultMessage string
}

var (
	validationKind   = errorKind{http.StatusBadRequest, "ValidationException", "Validation failed"}
	unauthorizedKind = errorKind{http.StatusUnauthorized, "UnauthorizedException", "Unauthorized"}
	forbiddenKind    = errorKind{http.StatusForbidden, "ForbiddenException", "Forbidden"}
	notFoundKind     = errorKind{http.StatusNotFound, "NotFoundException", "Not found"}
	conflictKind     = errorKind{http.StatusConflict, "ConflictException", "Conflict occurred"}
	rateLimitKind    = errorKind{http.StatusTooManyRequests, "TooManyRequestsException", "Too many requests"}
	internalKind     = errorKind{http.StatusInternalServerError, "InternalServerException", "Internal Server Error"}
)

// classify maps an error to its kind. Unknown errors are internal.
func classify(err error) errorKind {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return validationKind
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return unauthorizedKind
	case apperrors.Is(err, apperrors.ErrForbidden):
		return forbiddenKind
	case apperrors.Is(err, apperrors.ErrNotFound):
		return notFoundKind
	case apperrors.Is(err, apperrors.ErrConflict):
		return conflictKind
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		return rateLimitKind
	default:
		return internalKind
	}
}

// NewErrorResponse builds the client-visible body for err.
// Internal errors never expose their message.
func NewErrorResponse(err error) ErrorResponse {
	kind := classify(err)
	response := ErrorResponse{
		Name:       kind.name,
		Message:    kind.defaultMessage,
		StatusCode: kind.status,
	}
	if kind == internalKind {
		return response
	}

	var publicErr *apperrors.PublicError
	if apperrors.As(err, &publicErr) {
		if publicErr.Message != "" {
			response.Message = publicErr.Message
		}
		response.Errors = publicErr.Fields
	}
	return response
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	response := NewErrorResponse(err)

	if logger != nil {
		if response.StatusCode >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.Int("status_code", response.StatusCode),
				slog.String("path", c.FullPath()),
				slog.Any("error", err),
			)
		} else {
			logger.Debug("request rejected",
				slog.Int("status_code", response.StatusCode),
				slog.String("error_name", response.Name),
				slog.String("message", response.Message),
			)
		}
	}

	c.JSON(response.StatusCode, response)
}

// HandleBadRequestGin writes a 400 response for a body that could not be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Name:       validationKind.name,
		Message:    "request body must be valid JSON",
		StatusCode: http.StatusBadRequest,
	})
}
