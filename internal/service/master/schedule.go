package master

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

const workSchedulesPath = "/api/v1/work-schedules"

type workScheduleService struct {
	res resource[schedule.WorkSchedulePayload, schedule.WorkSchedule]
}

func NewWorkScheduleService(client *apiclient.Client) schedule.WorkScheduleService {
	return &workScheduleService{
		res: resource[schedule.WorkSchedulePayload, schedule.WorkSchedule]{
			client:   client,
			path:     workSchedulesPath,
			name:     "work schedules",
			notFound: schedule.ErrWorkScheduleNotFound,
			convert:  schedule.WorkSchedulePayload.ToWorkSchedule,
			config:   schedule.ListConfig,
		},
	}
}

func (s *workScheduleService) List(ctx context.Context, q listquery.Query) (listquery.Result[schedule.WorkSchedule], error) {
	return s.res.list(ctx, q)
}

func (s *workScheduleService) Get(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	return s.res.get(ctx, id)
}

func (s *workScheduleService) Create(ctx context.Context, req schedule.WorkScheduleRequest) (schedule.WorkSchedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkSchedule{}, err
	}
	return s.res.create(ctx, req.Body())
}

func (s *workScheduleService) Update(ctx context.Context, id string, req schedule.WorkScheduleRequest) (schedule.WorkSchedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkSchedule{}, err
	}
	return s.res.update(ctx, id, req.Body())
}

func (s *workScheduleService) Delete(ctx context.Context, id string) error {
	return s.res.delete(ctx, id)
}
