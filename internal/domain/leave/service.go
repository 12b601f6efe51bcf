package leave

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

type LeaveTypeService interface {
	List(ctx context.Context, q listquery.Query) (listquery.Result[LeaveType], error)
	Get(ctx context.Context, id string) (LeaveType, error)
	Create(ctx context.Context, req LeaveTypeRequest) (LeaveType, error)
	Update(ctx context.Context, id string, req LeaveTypeRequest) (LeaveType, error)
	Delete(ctx context.Context, id string) error
}
