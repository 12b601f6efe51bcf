package attendance

import (
	"math"
	"strconv"
	"time"
)

// Today formats now as a calendar day in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

// DeriveTodayStatus returns the record dated today, or nil when the employee
// has not clocked in today. If several records share the date the first wins.
func DeriveTodayStatus(records []Record, today string) *Record {
	for i := range records {
		if records[i].Date == today {
			rec := records[i]
			return &rec
		}
	}
	return nil
}

// CanClockIn holds when there is no record for today or it has no check-in.
func CanClockIn(status *Record) bool {
	return status == nil || status.CheckIn == nil
}

// CanClockOut holds when today's record is checked in but not out.
func CanClockOut(status *Record) bool {
	return status != nil && status.CheckIn != nil && status.CheckOut == nil
}

// StateOf maps a derived status to its State.
func StateOf(status *Record) State {
	switch {
	case CanClockIn(status):
		return StateNotClockedIn
	case CanClockOut(status):
		return StateClockedIn
	default:
		return StateClockedOut
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotalHours returns out-in in hours rounded to 2 decimals.
func ComputeTotalHours(in, out time.Time) float64 {
	return round2(out.Sub(in).Hours())
}

// Hours returns the worked hours of r, computing them when the server did not.
func Hours(r *Record) (float64, bool) {
	if r == nil || r.CheckIn == nil || r.CheckOut == nil {
		return 0, false
	}
	if r.TotalHours != nil {
		return round2(*r.TotalHours), true
	}
	return ComputeTotalHours(*r.CheckIn, *r.CheckOut), true
}

// FormatHours renders hours with two decimals, or HoursPlaceholder.
func FormatHours(r *Record) string {
	h, ok := Hours(r)
	if !ok {
		return HoursPlaceholder
	}
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// Merge replaces the record with rec's date, or appends rec.
// The input slice is not modified.
func Merge(records []Record, rec Record) []Record {
	out := make([]Record, 0, len(records)+1)
	replaced := false
	for _, r := range records {
		if !replaced && r.Date == rec.Date {
			out = append(out, rec)
			replaced = true
			continue
		}
		out = append(out, r)
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}

// TodayStatus is the view of today's clock state.
type TodayStatus struct {
	Date         string  `json:"date"`
	State        State   `json:"state"`
	Record       *Record `json:"record"`
	CanClockIn   bool    `json:"can_clock_in"`
	CanClockOut  bool    `json:"can_clock_out"`
	HoursDisplay string  `json:"hours_display"`
	IsLate       bool    `json:"is_late"`
}

func NewTodayStatus(records []Record, today string) TodayStatus {
	rec := DeriveTodayStatus(records, today)
	status := TodayStatus{
		Date:         today,
		State:        StateOf(rec),
		Record:       rec,
		CanClockIn:   CanClockIn(rec),
		CanClockOut:  CanClockOut(rec),
		HoursDisplay: FormatHours(rec),
	}
	if rec != nil {
		status.IsLate = rec.IsLate
	}
	return status
}

// Summary aggregates a set of records for the history page.
type Summary struct {
	Days       int     `json:"days"`
	LateDays   int     `json:"late_days"`
	OpenDays   int     `json:"open_days"`
	TotalHours float64 `json:"total_hours"`
}

func Summarize(records []Record) Summary {
	var s Summary
	for i := range records {
		r := &records[i]
		if r.CheckIn == nil {
			continue
		}
		s.Days++
		if r.IsLate {
			s.LateDays++
		}
		if h, ok := Hours(r); ok {
			s.TotalHours += h
		} else {
			s.OpenDays++
		}
	}
	s.TotalHours = round2(s.TotalHours)
	return s
}
