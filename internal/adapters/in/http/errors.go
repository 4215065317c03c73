package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	kindUnauthorized     = "Unauthorized"
	kindForbidden        = "Forbidden"
	kindMethodNotAllowed = "MethodNotAllowed"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int            `json:"code"`
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

var kindStatus = map[string]int{
	errs.KindNotFound:              http.StatusNotFound,
	errs.KindInvalidState:          http.StatusConflict,
	errs.KindConflict:              http.StatusConflict,
	errs.KindStaffUnavailable:      http.StatusConflict,
	errs.KindIncompletePreparation: http.StatusUnprocessableEntity,
	errs.KindDeadlineExpired:       http.StatusGone,
	errs.KindValidation:            http.StatusBadRequest,
}

// NewErrorHandler renders handler errors as ErrorResponse. Internal errors
// are logged and their text is not sent to the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		if resp.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Code)
		} else {
			err = c.JSON(resp.Code, resp)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

func toErrorResponse(err error) ErrorResponse {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ErrorResponse{
			Code:    httpErr.Code,
			Kind:    kindOfStatus(httpErr.Code),
			Message: fmt.Sprint(httpErr.Message),
		}
	}

	if errors.Is(err, ErrForbidden) || errors.Is(err, commands.ErrAssignmentBelongsToAnotherCourier) {
		return ErrorResponse{Code: http.StatusForbidden, Kind: kindForbidden, Message: err.Error()}
	}

	kind := errs.Kind(err)
	status, ok := kindStatus[kind]
	if !ok {
		return ErrorResponse{
			Code:    http.StatusInternalServerError,
			Kind:    errs.KindInternal,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}

	resp := ErrorResponse{Code: status, Kind: kind, Message: err.Error()}

	var incomplete *errs.IncompletePreparationError
	if errors.As(err, &incomplete) {
		remaining := incomplete.RemainingItemIDs
		if remaining == nil {
			remaining = []string{}
		}
		resp.Details = map[string]any{"remainingItemIds": remaining}
	}

	var expired *errs.DeadlineExpiredError
	if errors.As(err, &expired) {
		resp.Details = map[string]any{"acceptDeadline": expired.Deadline.UTC().Format(time.RFC3339)}
	}

	return resp
}

func kindOfStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return errs.KindValidation
	case http.StatusUnauthorized:
		return kindUnauthorized
	case http.StatusForbidden:
		return kindForbidden
	case http.StatusNotFound:
		return errs.KindNotFound
	case http.StatusMethodNotAllowed:
		return kindMethodNotAllowed
	default:
		if status >= http.StatusInternalServerError {
			return errs.KindInternal
		}
		return http.StatusText(status)
	}
}
