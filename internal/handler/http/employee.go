package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	NewForm(w http.ResponseWriter, r *http.Request)
	EditForm(w http.ResponseWriter, r *http.Request)
	CheckDepartment(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	lists           *listquery.Registry
}

func NewEmployeeHandler(employeeService employee.EmployeeService, lists *listquery.Registry) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		lists:           lists,
	}
}

// FormView is the employee create/edit page.
type FormView struct {
	Mode        employee.Mode `json:"mode"`
	Form        employee.Form `json:"form"`
	Departments []string      `json:"departments"`
}

// DepartmentCheck is the result of validating the department field on blur.
type DepartmentCheck struct {
	Department string `json:"department"`
	Valid      bool   `json:"valid"`
	Message    string `json:"message,omitempty"`
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	key, q := listQuery(h.lists, r, listEmployees)
	res, err := h.employeeService.List(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeList(w, h.lists, key, res)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Employee")
	if !ok {
		return
	}

	result, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// NewForm implements EmployeeHandler
func (h *employeeHandlerImpl) NewForm(w http.ResponseWriter, r *http.Request) {
	form, departments, err := h.employeeService.NewForm(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, FormView{Mode: employee.ModeCreate, Form: form, Departments: departments})
}

// EditForm implements EmployeeHandler
func (h *employeeHandlerImpl) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Employee")
	if !ok {
		return
	}

	form, departments, err := h.employeeService.EditForm(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, FormView{Mode: employee.ModeEdit, Form: form, Departments: departments})
}

// CheckDepartment implements EmployeeHandler. An unknown department is
// reported with the cleared value so the page can empty the field.
func (h *employeeHandlerImpl) CheckDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Department string `json:"department"`
	}
	if !decodeJSON(w, r, &req, "CheckDepartment") {
		return
	}

	value, err := h.employeeService.CheckDepartment(r.Context(), req.Department)
	var formErr *employee.FormError
	switch {
	case errors.As(err, &formErr):
		response.Success(w, DepartmentCheck{Department: value, Valid: false, Message: formErr.Error()})
	case err != nil:
		response.HandleError(w, err)
	default:
		response.Success(w, DepartmentCheck{Department: value, Valid: true})
	}
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var form employee.Form
	if !decodeJSON(w, r, &form, "CreateEmployee") {
		return
	}

	result, err := h.employeeService.Create(r.Context(), &form)
	if err != nil {
		h.submitError(w, employee.ModeCreate, &form, err)
		return
	}

	slog.Info("Employee created", "id", result.ID)
	response.Created(w, result.Message, result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Employee")
	if !ok {
		return
	}

	var form employee.Form
	if !decodeJSON(w, r, &form, "UpdateEmployee") {
		return
	}

	result, err := h.employeeService.Update(r.Context(), id, &form)
	if err != nil {
		h.submitError(w, employee.ModeEdit, &form, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// submitError returns a failed form rule together with the form, which may
// have had its department cleared. Passwords are never echoed back.
func (h *employeeHandlerImpl) submitError(w http.ResponseWriter, mode employee.Mode, form *employee.Form, err error) {
	var formErr *employee.FormError
	if !errors.As(err, &formErr) {
		response.HandleError(w, err)
		return
	}

	echo := *form
	echo.Password = ""
	echo.ConfirmPassword = ""
	response.FormInvalid(w, formErr.Error(), response.FormErrorDetails(formErr), FormView{Mode: mode, Form: echo})
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Employee")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// SetStatus implements EmployeeHandler
func (h *employeeHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Employee")
	if !ok {
		return
	}

	var req employee.StatusRequest
	if !decodeJSON(w, r, &req, "SetStatus") {
		return
	}

	result, err := h.employeeService.SetStatus(r.Context(), id, employee.Status(req.Status))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee status updated", result)
}
