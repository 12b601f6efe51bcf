package master

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

const leaveTypesPath = "/api/v1/leave-types"

type leaveTypeService struct {
	res resource[leave.LeaveTypePayload, leave.LeaveType]
}

func NewLeaveTypeService(client *apiclient.Client) leave.LeaveTypeService {
	return &leaveTypeService{
		res: resource[leave.LeaveTypePayload, leave.LeaveType]{
			client:   client,
			path:     leaveTypesPath,
			name:     "leave types",
			notFound: leave.ErrLeaveTypeNotFound,
			convert:  leave.LeaveTypePayload.ToLeaveType,
			config:   leave.ListConfig,
		},
	}
}

func (s *leaveTypeService) List(ctx context.Context, q listquery.Query) (listquery.Result[leave.LeaveType], error) {
	return s.res.list(ctx, q)
}

func (s *leaveTypeService) Get(ctx context.Context, id string) (leave.LeaveType, error) {
	return s.res.get(ctx, id)
}

func (s *leaveTypeService) Create(ctx context.Context, req leave.LeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}
	return s.res.create(ctx, req.Body())
}

func (s *leaveTypeService) Update(ctx context.Context, id string, req leave.LeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}
	return s.res.update(ctx, id, req.Body())
}

func (s *leaveTypeService) Delete(ctx context.Context, id string) error {
	return s.res.delete(ctx, id)
}
