package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

const (
	employeesPath = "/api/v1/employees"
	submitAction  = "employee-submit"
)

// Config holds employee service configuration
type Config struct {
	RedirectDelay time.Duration // default: 1.5s grace period before navigating to the detail page
	DetailURL     string        // default: /employees/%s
	ListURL       string        // default: /employees
}

type EmployeeServiceImpl struct {
	client      *apiclient.Client
	guard       *inflight.Guard
	departments department.DepartmentService
	config      Config
}

func NewEmployeeService(
	client *apiclient.Client,
	guard *inflight.Guard,
	departments department.DepartmentService,
	cfg Config,
) employee.EmployeeService {
	if cfg.RedirectDelay == 0 {
		cfg.RedirectDelay = 1500 * time.Millisecond
	}
	if cfg.DetailURL == "" {
		cfg.DetailURL = "/employees/%s"
	}
	if cfg.ListURL == "" {
		cfg.ListURL = "/employees"
	}

	return &EmployeeServiceImpl{
		client:      client,
		guard:       guard,
		departments: departments,
		config:      cfg,
	}
}

func employeePath(id string) string {
	return employeesPath + "/" + url.PathEscape(id)
}

func translate(ctx context.Context, err error) error {
	if errors.Is(err, apiclient.ErrNotFound) {
		return employee.ErrEmployeeNotFound
	}
	return session.Translate(ctx, err)
}

func (s *EmployeeServiceImpl) all(ctx context.Context) ([]employee.Employee, error) {
	client, _, err := session.Client(ctx, s.client)
	if err != nil {
		return nil, err
	}
	payloads, err := apiclient.GetAll[employee.EmployeePayload](ctx, client, employeesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", translate(ctx, err))
	}
	employees := make([]employee.Employee, 0, len(payloads))
	for _, p := range payloads {
		employees = append(employees, p.ToEmployee())
	}
	return employees, nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, q listquery.Query) (listquery.Result[employee.Employee], error) {
	src := listquery.ClientSource[employee.Employee]{Load: s.all, Config: employee.ListConfig}
	return src.Fetch(ctx, q)
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	client, _, err := session.Client(ctx, s.client)
	if err != nil {
		return employee.Employee{}, err
	}
	raw, err := client.Get(ctx, employeePath(id), nil)
	if err != nil {
		return employee.Employee{}, translate(ctx, err)
	}
	p, err := apiclient.Decode[employee.EmployeePayload](raw)
	if err != nil {
		return employee.Employee{}, err
	}
	return p.ToEmployee(), nil
}

func (s *EmployeeServiceImpl) NewForm(ctx context.Context) (employee.Form, []string, error) {
	names, err := s.departments.ActiveNames(ctx)
	if err != nil {
		return employee.Form{}, nil, err
	}
	form := employee.Form{
		Status: string(employee.StatusActive),
		Role:   string(employee.RoleEmployee),
	}
	return form, names, nil
}

func (s *EmployeeServiceImpl) EditForm(ctx context.Context, id string) (employee.Form, []string, error) {
	var (
		e     employee.Employee
		names []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		e, err = s.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.departments.ActiveNames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return employee.Form{}, nil, err
	}

	return employee.FormFromEmployee(e), names, nil
}

func (s *EmployeeServiceImpl) CheckDepartment(ctx context.Context, value string) (string, error) {
	names, err := s.departments.ActiveNames(ctx)
	if err != nil {
		return value, err
	}
	return employee.CheckDepartment(value, names)
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, form *employee.Form) (employee.SubmitResult, error) {
	return s.submit(ctx, employee.ModeCreate, "", form)
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, form *employee.Form) (employee.SubmitResult, error) {
	return s.submit(ctx, employee.ModeEdit, id, form)
}

// submit validates form locally and sends it upstream only when it passes.
// One submit per session runs at a time.
func (s *EmployeeServiceImpl) submit(ctx context.Context, mode employee.Mode, id string, form *employee.Form) (employee.SubmitResult, error) {
	client, sc, err := session.Client(ctx, s.client)
	if err != nil {
		return employee.SubmitResult{}, err
	}

	release, ok := s.guard.TryAcquire(inflight.Key(sc.ID(), submitAction))
	if !ok {
		return employee.SubmitResult{}, inflight.ErrInProgress
	}
	defer release()

	names, err := s.departments.ActiveNames(ctx)
	if err != nil {
		return employee.SubmitResult{}, err
	}
	if err := form.Validate(mode, names); err != nil {
		return employee.SubmitResult{}, err
	}
	payload, err := form.Payload(mode)
	if err != nil {
		return employee.SubmitResult{}, err
	}

	var raw []byte
	if mode == employee.ModeCreate {
		raw, err = client.Post(ctx, employeesPath, payload)
	} else {
		raw, err = client.Put(ctx, employeePath(id), payload)
	}
	if err != nil {
		err = translate(ctx, err)
		if errors.Is(err, session.ErrUnauthenticated) {
			return employee.SubmitResult{}, err
		}
		slog.Warn("employee save rejected", "mode", mode, "id", id, "error", err)
		return employee.SubmitResult{}, &employee.SaveError{
			Message: apiclient.ServerMessage(err, employee.SaveFailedMessage),
			Err:     err,
		}
	}

	savedID := id
	if p, err := apiclient.Decode[employee.EmployeePayload](raw); err == nil && p.ID != "" {
		savedID = string(p.ID)
	}

	result := employee.SubmitResult{
		ID:              savedID,
		RedirectURL:     s.config.ListURL,
		RedirectAfter:   s.config.RedirectDelay,
		RedirectAfterMS: s.config.RedirectDelay.Milliseconds(),
	}
	if savedID != "" {
		result.RedirectURL = fmt.Sprintf(s.config.DetailURL, url.PathEscape(savedID))
	}
	if mode == employee.ModeCreate {
		result.Message = "Employee created successfully"
	} else {
		result.Message = "Employee updated successfully"
	}
	return result, nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	client, _, err := session.Client(ctx, s.client)
	if err != nil {
		return err
	}
	if err := client.Delete(ctx, employeePath(id)); err != nil {
		return translate(ctx, err)
	}
	return nil
}

func (s *EmployeeServiceImpl) SetStatus(ctx context.Context, id string, status employee.Status) (employee.Employee, error) {
	if status != employee.StatusActive && status != employee.StatusInactive && status != employee.StatusOnLeave {
		return employee.Employee{}, employee.ErrInvalidStatus
	}
	client, _, err := session.Client(ctx, s.client)
	if err != nil {
		return employee.Employee{}, err
	}
	raw, err := client.Put(ctx, employeePath(id)+"/status", employee.StatusRequest{Status: string(status)})
	if err != nil {
		return employee.Employee{}, translate(ctx, err)
	}
	p, err := apiclient.Decode[employee.EmployeePayload](raw)
	if err != nil {
		return employee.Employee{}, err
	}
	return p.ToEmployee(), nil
}
