package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

// RecordPayload is an attendance record as the upstream sends it.
// Older deployments use clock_in/clock_out and working_hours.
type RecordPayload struct {
	ID           apiclient.ID        `json:"id"`
	EmployeeID   apiclient.ID        `json:"employee_id"`
	Date         string              `json:"date"`
	CheckIn      apiclient.Timestamp `json:"check_in"`
	CheckOut     apiclient.Timestamp `json:"check_out"`
	ClockIn      apiclient.Timestamp `json:"clock_in"`
	ClockOut     apiclient.Timestamp `json:"clock_out"`
	TotalHours   *apiclient.Float    `json:"total_hours"`
	WorkingHours *apiclient.Float    `json:"working_hours"`
	IsLate       apiclient.Bool      `json:"is_late"`
}

// ToRecord normalizes p and enforces the check-in/check-out ordering.
// Timestamps are placed in loc, which also dates a record sent without one.
func (p RecordPayload) ToRecord(loc *time.Location) (Record, error) {
	in, out := p.CheckIn, p.CheckOut
	if !in.Valid {
		in = p.ClockIn
	}
	if !out.Valid {
		out = p.ClockOut
	}
	in, out = in.In(loc), out.In(loc)

	date := strings.TrimSpace(p.Date)
	if len(date) > len(DateLayout) {
		date = date[:len(DateLayout)]
	}
	if date == "" && in.Valid {
		date = in.Time.Format(DateLayout)
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return Record{}, fmt.Errorf("%w: invalid date %q", ErrInvalidRecord, p.Date)
	}

	if out.Valid && (!in.Valid || out.Time.Before(in.Time)) {
		return Record{}, fmt.Errorf("%w: record %s checks out before checking in", ErrInvalidRecord, p.ID)
	}

	rec := Record{
		ID:         string(p.ID),
		EmployeeID: string(p.EmployeeID),
		Date:       date,
		CheckIn:    in.Ptr(),
		CheckOut:   out.Ptr(),
		IsLate:     bool(p.IsLate),
	}

	hours := p.TotalHours
	if hours == nil {
		hours = p.WorkingHours
	}
	if h, ok := Hours(&rec); ok {
		if hours != nil {
			h = round2(float64(*hours))
		}
		rec.TotalHours = &h
	}
	return rec, nil
}

// ClockRequest is the body of a clock-in or clock-out call.
type ClockRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs.Add("location", "latitude and longitude must be sent together")
	}
	if r.Latitude != nil && !validator.InRange(*r.Latitude, -90, 90) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && !validator.InRange(*r.Longitude, -180, 180) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	r.Notes = strings.TrimSpace(r.Notes)
	if validator.ExceedsLength(r.Notes, 500) {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

// Board is the attendance page view model.
type Board struct {
	Employee EmployeeRef `json:"employee"`
	Today    TodayStatus `json:"today"`
	Records  []Record    `json:"records"`
	Summary  Summary     `json:"summary"`
}

// EmployeeRef is the signed-in user shown on the attendance page.
type EmployeeRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
