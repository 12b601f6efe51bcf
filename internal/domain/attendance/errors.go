package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrInvalidRecord     = errors.New("attendance record is inconsistent")
	ErrActionInProgress  = errors.New("an attendance action is already in progress")
)
