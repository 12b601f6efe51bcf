package attendance

import (
	"time"
)

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"` // YYYY-MM-DD
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	TotalHours *float64   `json:"total_hours"`
	IsLate     bool       `json:"is_late"`
}

// State is the derived clock state for a day.
type State string

const (
	StateNotClockedIn State = "not_clocked_in"
	StateClockedIn    State = "clocked_in"
	StateClockedOut   State = "clocked_out"
)

const DateLayout = "2006-01-02"

// HoursPlaceholder is shown instead of hours while the day is still open.
const HoursPlaceholder = "Not yet clocked out"
