package master

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

const departmentsPath = "/api/v1/departments"

type departmentService struct {
	res   resource[department.DepartmentPayload, department.Department]
	group singleflight.Group
}

func NewDepartmentService(client *apiclient.Client) department.DepartmentService {
	return &departmentService{
		res: resource[department.DepartmentPayload, department.Department]{
			client:   client,
			path:     departmentsPath,
			name:     "departments",
			notFound: department.ErrDepartmentNotFound,
			convert:  department.DepartmentPayload.ToDepartment,
			config:   department.ListConfig,
		},
	}
}

func (s *departmentService) List(ctx context.Context, q listquery.Query) (listquery.Result[department.Department], error) {
	return s.res.list(ctx, q)
}

func (s *departmentService) Get(ctx context.Context, id string) (department.Department, error) {
	return s.res.get(ctx, id)
}

func (s *departmentService) Create(ctx context.Context, req department.DepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	return s.res.create(ctx, req)
}

func (s *departmentService) Update(ctx context.Context, id string, req department.DepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	return s.res.update(ctx, id, req)
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	return s.res.delete(ctx, id)
}

// ActiveNames shares one upstream load between concurrent callers of the
// same session, e.g. the form page and the department blur check. The load
// outlives a caller that gives up; only that caller sees its ctx error.
func (s *departmentService) ActiveNames(ctx context.Context) ([]string, error) {
	sc, ok := session.FromContext(ctx)
	if !ok {
		return nil, session.ErrUnauthenticated
	}
	ch := s.group.DoChan(sc.ID(), func() (any, error) {
		departments, err := s.res.all(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return department.ActiveNames(departments), nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]string), nil
	}
}
