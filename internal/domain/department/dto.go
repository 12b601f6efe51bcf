package department

import (
	"strings"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

type DepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (r *DepartmentRequest) Validate() error {
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

	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	if !validator.IsInSlice(r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DepartmentPayload is a department as the upstream sends it. Some
// deployments send is_active instead of status.
type DepartmentPayload struct {
	ID          apiclient.ID    `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Status      string          `json:"status"`
	IsActive    *apiclient.Bool `json:"is_active"`
}

func (p DepartmentPayload) ToDepartment() Department {
	d := Department{
		ID:     string(p.ID),
		Name:   p.Name,
		Status: Status(strings.ToLower(p.Status)),
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if d.Status == "" {
		d.Status = StatusActive
		if p.IsActive != nil && !bool(*p.IsActive) {
			d.Status = StatusInactive
		}
	}
	return d
}

var ListConfig = listquery.Config[Department]{
	SearchFields: []func(Department) string{
		func(d Department) string { return d.Name },
		func(d Department) string { return d.Description },
	},
	SortKeys: map[string]func(a, b Department) int{
		"status": listquery.By(func(d Department) string { return string(d.Status) }),
	},
	DefaultSort: listquery.By(func(d Department) string { return d.Name }),
}
