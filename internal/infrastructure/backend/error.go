package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

// StatusMessage is the user-facing text for a backend status without a detail.
func StatusMessage(status int) string {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return "Invalid data, please check the entered values"
	case status == http.StatusUnauthorized:
		return "You are not authorized, please log in again"
	case status == http.StatusForbidden:
		return "You do not have permission to perform this action"
	case status == http.StatusNotFound:
		return "The requested resource was not found"
	case status == http.StatusConflict:
		return "The resource already exists"
	case status >= 500:
		return "Server error, please try again later"
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// validationDetail is one entry of a request validation failure body.
type validationDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// NewError converts a non-2xx backend answer into an AppError. The backend's
// own detail message wins over the status text.
func NewError(status int, body []byte) *apperror.AppError {
	code := status
	if status >= 500 {
		code = http.StatusBadGateway
	}
	appErr := apperror.NewAPIError(code, StatusMessage(status))

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return appErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		if strings.TrimSpace(detail) != "" {
			appErr.Message = detail
		}
		return appErr
	}

	var details []validationDetail
	if err := json.Unmarshal(payload.Detail, &details); err == nil && len(details) > 0 {
		msgs := make([]string, 0, len(details))
		for _, dd := range details {
			field := ""
			if len(dd.Loc) > 0 {
				field = fmt.Sprint(dd.Loc[len(dd.Loc)-1])
			}
			appErr.Errors = append(appErr.Errors, apperror.FieldError{Field: field, Message: dd.Msg})
			msgs = append(msgs, dd.Msg)
		}
		appErr.Message = strings.Join(msgs, "; ")
	}
	return appErr
}

// transportError maps a failed round trip to a user-facing AppError and keeps
// the cause attached for logs.
func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.WithSecondaryError(apperror.NewAPIError(http.StatusGatewayTimeout, "Connection timed out, please try again"), err)
	}
	if errors.Is(err, context.Canceled) {
		return errors.WithSecondaryError(apperror.NewAPIError(499, "Request cancelled"), err)
	}
	return errors.WithSecondaryError(apperror.NewAPIError(http.StatusBadGateway, "Failed to connect to the server"), err)
}
