package employee

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

// EmployeeService backs the employee list, detail and form pages.
type EmployeeService interface {
	List(ctx context.Context, q listquery.Query) (listquery.Result[Employee], error)
	Get(ctx context.Context, id string) (Employee, error)

	// NewForm returns an empty create form and the active department names.
	NewForm(ctx context.Context) (Form, []string, error)
	// EditForm prefills the form for id.
	EditForm(ctx context.Context, id string) (Form, []string, error)
	// CheckDepartment validates the department field on blur.
	CheckDepartment(ctx context.Context, value string) (string, error)

	// Create and Update validate locally and only call upstream when the form
	// passes. Validation may clear an invalid department from form.
	Create(ctx context.Context, form *Form) (SubmitResult, error)
	Update(ctx context.Context, id string, form *Form) (SubmitResult, error)

	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status Status) (Employee, error)
}
