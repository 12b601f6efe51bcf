package schedule

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

type WorkScheduleService interface {
	List(ctx context.Context, q listquery.Query) (listquery.Result[WorkSchedule], error)
	Get(ctx context.Context, id string) (WorkSchedule, error)
	Create(ctx context.Context, req WorkScheduleRequest) (WorkSchedule, error)
	Update(ctx context.Context, id string, req WorkScheduleRequest) (WorkSchedule, error)
	Delete(ctx context.Context, id string) error
}
