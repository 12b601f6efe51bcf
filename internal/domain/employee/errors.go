package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrMissingFields     = errors.New("please fill in all required fields")
	ErrInvalidSalary     = errors.New("salary must be a number greater than 0")
	ErrPasswordRequired  = errors.New("password and confirm password are required")
	ErrPasswordMismatch  = errors.New("password and confirm password do not match")
	ErrUnknownDepartment = errors.New("department must be one of the active departments")
	ErrInvalidEmail      = errors.New("email is not valid")
	ErrInvalidStatus     = errors.New("status must be active, inactive or on_leave")
	ErrInvalidRole       = errors.New("role must be employee, manager, hr or admin")
	ErrInvalidDeduction  = errors.New("deductions must be non-negative numbers and percentages at most 100")
)

// FormError is a failed form rule. Err is one of the sentinels above.
type FormError struct {
	Err     error
	Field   string
	Message string
	// Missing lists the labels of empty required fields.
	Missing []string
}

func (e *FormError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *FormError) Unwrap() error { return e.Err }

// SaveFailedMessage is shown when a rejected save carries no server message.
const SaveFailedMessage = "Failed to save employee"

// SaveError is a save the upstream rejected. Message is what the page shows:
// the server's own message when it sent one, SaveFailedMessage otherwise.
type SaveError struct {
	Message string
	Err     error
}

func (e *SaveError) Error() string { return e.Message }

func (e *SaveError) Unwrap() error { return e.Err }
