package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

type WorkScheduleRequest struct {
	Name        string   `json:"name"`
	WorkingDays []string `json:"working_days"`
	HoursPerDay string   `json:"hours_per_day"`
	Notes       string   `json:"notes"`
}

func (r *WorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if days, bad, ok := NormalizeDays(r.WorkingDays); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: fmt.Sprintf("unknown weekday %q", bad),
		})
	} else if len(days) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "at least one working day is required",
		})
	} else {
		r.WorkingDays = days
	}

	hours, ok := validator.ParsePositiveDecimal(r.HoursPerDay)
	if !ok || hours.GreaterThan(decimal.NewFromInt(24)) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_per_day",
			Message: "hours_per_day must be greater than 0 and at most 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Body is the upstream write shape of a validated request.
func (r WorkScheduleRequest) Body() WorkScheduleBody {
	hours, _ := decimal.NewFromString(strings.TrimSpace(r.HoursPerDay))
	return WorkScheduleBody{
		Name:        r.Name,
		WorkingDays: r.WorkingDays,
		HoursPerDay: hours,
		Notes:       r.Notes,
	}
}

type WorkScheduleBody struct {
	Name        string          `json:"name"`
	WorkingDays []string        `json:"working_days"`
	HoursPerDay decimal.Decimal `json:"hours_per_day"`
	Notes       string          `json:"notes"`
}

// dayList accepts ["monday","tuesday"] or "monday,tuesday".
type dayList []string

func (d *dayList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var days []string
		if err := json.Unmarshal(b, &days); err != nil {
			return err
		}
		*d = days
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid working_days %s", string(b))
	}
	var days []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			days = append(days, part)
		}
	}
	*d = days
	return nil
}

type WorkSchedulePayload struct {
	ID          apiclient.ID    `json:"id"`
	Name        string          `json:"name"`
	WorkingDays dayList         `json:"working_days"`
	HoursPerDay apiclient.Float `json:"hours_per_day"`
	Notes       *string         `json:"notes"`
}

func (p WorkSchedulePayload) ToWorkSchedule() WorkSchedule {
	ws := WorkSchedule{
		ID:          string(p.ID),
		Name:        p.Name,
		HoursPerDay: decimal.NewFromFloat(float64(p.HoursPerDay)),
	}
	if days, _, ok := NormalizeDays(p.WorkingDays); ok {
		ws.WorkingDays = days
	} else {
		ws.WorkingDays = []string(p.WorkingDays)
	}
	if p.Notes != nil {
		ws.Notes = *p.Notes
	}
	return ws
}

var ListConfig = listquery.Config[WorkSchedule]{
	SearchFields: []func(WorkSchedule) string{
		func(ws WorkSchedule) string { return ws.Name },
		func(ws WorkSchedule) string { return ws.Notes },
	},
	DefaultSort: listquery.By(func(ws WorkSchedule) string { return ws.Name }),
}
