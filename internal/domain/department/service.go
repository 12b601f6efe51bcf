package department

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

type DepartmentService interface {
	List(ctx context.Context, q listquery.Query) (listquery.Result[Department], error)
	Get(ctx context.Context, id string) (Department, error)
	Create(ctx context.Context, req DepartmentRequest) (Department, error)
	Update(ctx context.Context, id string, req DepartmentRequest) (Department, error)
	Delete(ctx context.Context, id string) error

	// ActiveNames returns the departments an employee can be assigned to.
	ActiveNames(ctx context.Context) ([]string, error)
}
