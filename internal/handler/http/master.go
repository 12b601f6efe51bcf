package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-web-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

type MasterHandler interface {
	// Department
	ListDepartments(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	// Leave type
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	GetLeaveType(w http.ResponseWriter, r *http.Request)
	CreateLeaveType(w http.ResponseWriter, r *http.Request)
	UpdateLeaveType(w http.ResponseWriter, r *http.Request)
	DeleteLeaveType(w http.ResponseWriter, r *http.Request)

	// Work schedule
	ListWorkSchedules(w http.ResponseWriter, r *http.Request)
	GetWorkSchedule(w http.ResponseWriter, r *http.Request)
	CreateWorkSchedule(w http.ResponseWriter, r *http.Request)
	UpdateWorkSchedule(w http.ResponseWriter, r *http.Request)
	DeleteWorkSchedule(w http.ResponseWriter, r *http.Request)

	// Benefit and deduction catalogs, selected by the {kind} URL param
	ListCatalog(w http.ResponseWriter, r *http.Request)
	GetCatalogItem(w http.ResponseWriter, r *http.Request)
	CreateCatalogItem(w http.ResponseWriter, r *http.Request)
	UpdateCatalogItem(w http.ResponseWriter, r *http.Request)
	DeleteCatalogItem(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	departments   department.DepartmentService
	leaveTypes    leave.LeaveTypeService
	workSchedules schedule.WorkScheduleService
	catalog       compensation.CatalogService
	lists         *listquery.Registry
}

func NewMasterHandler(
	departments department.DepartmentService,
	leaveTypes leave.LeaveTypeService,
	workSchedules schedule.WorkScheduleService,
	catalog compensation.CatalogService,
	lists *listquery.Registry,
) MasterHandler {
	return &masterHandlerImpl{
		departments:   departments,
		leaveTypes:    leaveTypes,
		workSchedules: workSchedules,
		catalog:       catalog,
		lists:         lists,
	}
}

// crud binds one settings resource to its HTTP verbs.
type crud[T any, R any] struct {
	list   string
	what   string
	fetch  func(ctx context.Context, q listquery.Query) (listquery.Result[T], error)
	get    func(ctx context.Context, id string) (T, error)
	create func(ctx context.Context, req R) (T, error)
	update func(ctx context.Context, id string, req R) (T, error)
	delete func(ctx context.Context, id string) error
}

func (c crud[T, R]) List(w http.ResponseWriter, r *http.Request, lists *listquery.Registry) {
	key, q := listQuery(lists, r, c.list)
	res, err := c.fetch(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, lists, key, res)
}

func (c crud[T, R]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, c.what)
	if !ok {
		return
	}
	result, err := c.get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (c crud[T, R]) Create(w http.ResponseWriter, r *http.Request) {
	var req R
	if !decodeJSON(w, r, &req, "Create"+c.what) {
		return
	}
	result, err := c.create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, c.what+" created successfully", result)
}

func (c crud[T, R]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, c.what)
	if !ok {
		return
	}
	var req R
	if !decodeJSON(w, r, &req, "Update"+c.what) {
		return
	}
	result, err := c.update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, c.what+" updated successfully", result)
}

func (c crud[T, R]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, c.what)
	if !ok {
		return
	}
	if err := c.delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, c.what+" deleted successfully", nil)
}

func (h *masterHandlerImpl) departmentCRUD() crud[department.Department, department.DepartmentRequest] {
	return crud[department.Department, department.DepartmentRequest]{
		list:   listDepartments,
		what:   "Department",
		fetch:  h.departments.List,
		get:    h.departments.Get,
		create: h.departments.Create,
		update: h.departments.Update,
		delete: h.departments.Delete,
	}
}

func (h *masterHandlerImpl) leaveTypeCRUD() crud[leave.LeaveType, leave.LeaveTypeRequest] {
	return crud[leave.LeaveType, leave.LeaveTypeRequest]{
		list:   listLeaveTypes,
		what:   "Leave type",
		fetch:  h.leaveTypes.List,
		get:    h.leaveTypes.Get,
		create: h.leaveTypes.Create,
		update: h.leaveTypes.Update,
		delete: h.leaveTypes.Delete,
	}
}

func (h *masterHandlerImpl) workScheduleCRUD() crud[schedule.WorkSchedule, schedule.WorkScheduleRequest] {
	return crud[schedule.WorkSchedule, schedule.WorkScheduleRequest]{
		list:   listWorkSchedules,
		what:   "Work schedule",
		fetch:  h.workSchedules.List,
		get:    h.workSchedules.Get,
		create: h.workSchedules.Create,
		update: h.workSchedules.Update,
		delete: h.workSchedules.Delete,
	}
}

// catalogCRUD resolves the {kind} URL param. Unknown kinds get a 404.
func (h *masterHandlerImpl) catalogCRUD(w http.ResponseWriter, r *http.Request) (crud[compensation.Item, compensation.ItemRequest], bool) {
	kind, ok := compensation.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		response.HandleError(w, compensation.ErrUnknownKind)
		return crud[compensation.Item, compensation.ItemRequest]{}, false
	}

	list, what := listBenefits, "Benefit"
	if kind == compensation.KindDeduction {
		list, what = listDeductions, "Deduction"
	}
	return crud[compensation.Item, compensation.ItemRequest]{
		list: list,
		what: what,
		fetch: func(ctx context.Context, q listquery.Query) (listquery.Result[compensation.Item], error) {
			return h.catalog.List(ctx, kind, q)
		},
		get: func(ctx context.Context, id string) (compensation.Item, error) {
			return h.catalog.Get(ctx, kind, id)
		},
		create: func(ctx context.Context, req compensation.ItemRequest) (compensation.Item, error) {
			return h.catalog.Create(ctx, kind, req)
		},
		update: func(ctx context.Context, id string, req compensation.ItemRequest) (compensation.Item, error) {
			return h.catalog.Update(ctx, kind, id, req)
		},
		delete: func(ctx context.Context, id string) error {
			return h.catalog.Delete(ctx, kind, id)
		},
	}, true
}

// ListDepartments implements MasterHandler.
func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	h.departmentCRUD().List(w, r, h.lists)
}

// GetDepartment implements MasterHandler.
func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	h.departmentCRUD().Get(w, r)
}

// CreateDepartment implements MasterHandler.
func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	h.departmentCRUD().Create(w, r)
}

// UpdateDepartment implements MasterHandler.
func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	h.departmentCRUD().Update(w, r)
}

// DeleteDepartment implements MasterHandler.
func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	h.departmentCRUD().Delete(w, r)
}

// ListLeaveTypes implements MasterHandler.
func (h *masterHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	h.leaveTypeCRUD().List(w, r, h.lists)
}

// GetLeaveType implements MasterHandler.
func (h *masterHandlerImpl) GetLeaveType(w http.ResponseWriter, r *http.Request) {
	h.leaveTypeCRUD().Get(w, r)
}

// CreateLeaveType implements MasterHandler.
func (h *masterHandlerImpl) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	h.leaveTypeCRUD().Create(w, r)
}

// UpdateLeaveType implements MasterHandler.
func (h *masterHandlerImpl) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	h.leaveTypeCRUD().Update(w, r)
}

// DeleteLeaveType implements MasterHandler.
func (h *masterHandlerImpl) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	h.leaveTypeCRUD().Delete(w, r)
}

// ListWorkSchedules implements MasterHandler.
func (h *masterHandlerImpl) ListWorkSchedules(w http.ResponseWriter, r *http.Request) {
	h.workScheduleCRUD().List(w, r, h.lists)
}

// GetWorkSchedule implements MasterHandler.
func (h *masterHandlerImpl) GetWorkSchedule(w http.ResponseWriter, r *http.Request) {
	h.workScheduleCRUD().Get(w, r)
}

// CreateWorkSchedule implements MasterHandler.
func (h *masterHandlerImpl) CreateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	h.workScheduleCRUD().Create(w, r)
}

// UpdateWorkSchedule implements MasterHandler.
func (h *masterHandlerImpl) UpdateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	h.workScheduleCRUD().Update(w, r)
}

// DeleteWorkSchedule implements MasterHandler.
func (h *masterHandlerImpl) DeleteWorkSchedule(w http.ResponseWriter, r *http.Request) {
	h.workScheduleCRUD().Delete(w, r)
}

// ListCatalog implements MasterHandler.
func (h *masterHandlerImpl) ListCatalog(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.catalogCRUD(w, r); ok {
		c.List(w, r, h.lists)
	}
}

// GetCatalogItem implements MasterHandler.
func (h *masterHandlerImpl) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.catalogCRUD(w, r); ok {
		c.Get(w, r)
	}
}

// CreateCatalogItem implements MasterHandler.
func (h *masterHandlerImpl) CreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.catalogCRUD(w, r); ok {
		c.Create(w, r)
	}
}

// UpdateCatalogItem implements MasterHandler.
func (h *masterHandlerImpl) UpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.catalogCRUD(w, r); ok {
		c.Update(w, r)
	}
}

// DeleteCatalogItem implements MasterHandler.
func (h *masterHandlerImpl) DeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.catalogCRUD(w, r); ok {
		c.Delete(w, r)
	}
}
