package leave

import (
	"math"
	"strings"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

type LeaveTypeRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	IsPaid      bool   `json:"is_paid"`
	DefaultDays int    `json:"default_days"`
}

func (r *LeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if len(r.Code) > 20 {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must not exceed 20 characters",
		})
	}

	if r.DefaultDays < 0 || r.DefaultDays > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days",
			Message: "default_days must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Body is the upstream write shape. Both day fields carry the same value
// because deployments read one or the other.
func (r LeaveTypeRequest) Body() LeaveTypeBody {
	return LeaveTypeBody{
		Name:        r.Name,
		Code:        r.Code,
		IsPaid:      r.IsPaid,
		DefaultDays: r.DefaultDays,
		DaysPerYear: r.DefaultDays,
	}
}

type LeaveTypeBody struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	IsPaid      bool   `json:"is_paid"`
	DefaultDays int    `json:"default_days"`
	DaysPerYear int    `json:"days_per_year"`
}

// LeaveTypePayload reads either default_days or days_per_year.
type LeaveTypePayload struct {
	ID          apiclient.ID     `json:"id"`
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	IsPaid      apiclient.Bool   `json:"is_paid"`
	DefaultDays *apiclient.Float `json:"default_days"`
	DaysPerYear *apiclient.Float `json:"days_per_year"`
}

func (p LeaveTypePayload) ToLeaveType() LeaveType {
	lt := LeaveType{
		ID:     string(p.ID),
		Name:   p.Name,
		Code:   p.Code,
		IsPaid: bool(p.IsPaid),
	}
	days := p.DefaultDays
	if days == nil {
		days = p.DaysPerYear
	}
	if days != nil {
		lt.DefaultDays = int(math.Round(float64(*days)))
	}
	return lt
}

var ListConfig = listquery.Config[LeaveType]{
	SearchFields: []func(LeaveType) string{
		func(lt LeaveType) string { return lt.Name },
		func(lt LeaveType) string { return lt.Code },
	},
	SortKeys: map[string]func(a, b LeaveType) int{
		"code": listquery.By(func(lt LeaveType) string { return lt.Code }),
	},
	DefaultSort: listquery.By(func(lt LeaveType) string { return lt.Name }),
}
