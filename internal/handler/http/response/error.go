package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

// LoginURL is where an ended session is sent.
const LoginURL = "/login"

// FormErrorDetails lists a form error per field. Missing required fields are
// reported under their labels.
func FormErrorDetails(fe *employee.FormError) map[string]string {
	details := make(map[string]string)
	for _, label := range fe.Missing {
		details[label] = "is required"
	}
	if fe.Field != "" {
		details[fe.Field] = fe.Error()
	}
	return details
}

// upstreamStatus keeps client errors and reports server failures as a bad gateway.
func upstreamStatus(code int) int {
	if code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var formErr *employee.FormError
	if errors.As(err, &formErr) {
		FormInvalid(w, formErr.Error(), FormErrorDetails(formErr), nil)
		return
	}

	// Session errors come before upstream errors: an upstream 401 is both.
	if errors.Is(err, session.ErrUnauthenticated) {
		SessionExpired(w, "Your session has ended, please log in again")
		return
	}

	var saveErr *employee.SaveError
	if errors.As(err, &saveErr) {
		status := http.StatusBadGateway
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			status = upstreamStatus(apiErr.StatusCode)
			Upstream(w, status, saveErr.Message, apiErr.Fields)
			return
		}
		Upstream(w, status, saveErr.Message, nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, apiclient.ServerMessage(err, "Invalid email or password"))
	case errors.Is(err, auth.ErrMissingToken):
		Upstream(w, http.StatusBadGateway, "Login failed, please try again", nil)

	// Concurrent actions
	case errors.Is(err, inflight.ErrInProgress),
		errors.Is(err, attendance.ErrActionInProgress):
		InProgress(w, "Please wait, your previous request is still being processed")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidRecord):
		Upstream(w, http.StatusBadGateway, "Attendance data could not be read", nil)

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, compensation.ErrItemNotFound):
		NotFound(w, "Item not found")
	case errors.Is(err, compensation.ErrUnknownKind):
		NotFound(w, err.Error())

	// Employee status toggle
	case errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, err.Error(), map[string]string{"status": err.Error()})

	// Upstream
	case errors.Is(err, apiclient.ErrMalformedResponse):
		Upstream(w, http.StatusBadGateway, "Unexpected response from the HR service", nil)
	case errors.Is(err, context.DeadlineExceeded):
		Upstream(w, http.StatusGatewayTimeout, "The HR service did not respond in time", nil)
	case errors.Is(err, context.Canceled):
		// The page went away; nobody reads the response.
		slog.Debug("request canceled", "error", err)

	// Default
	default:
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			Upstream(w, upstreamStatus(apiErr.StatusCode), apiclient.ServerMessage(err, "Request failed"), apiErr.Fields)
			return
		}
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
