package employee

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activeDepartments = []string{"Engineering", "Finance"}

func validForm() Form {
	return Form{
		EmployeeCode:    "EMP-001",
		FirstName:       "John",
		LastName:        "Smith",
		Email:           "john@example.com",
		Phone:           "081234567890",
		DateOfBirth:     "1990-01-02",
		Address:         "Jl. Merdeka 1",
		Department:      "Engineering",
		Position:        "Backend Engineer",
		StartDate:       "2024-01-15",
		Status:          "active",
		Salary:          "8500000",
		Role:            "employee",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		TaxPercent:      "5",
		HealthDeduction: "150000",
	}
}

func TestValidate_ValidForm(t *testing.T) {
	f := validForm()
	assert.NoError(t, f.Validate(ModeCreate, activeDepartments))
}

func TestValidate_MissingFieldsNamesEveryField(t *testing.T) {
	f := validForm()
	f.Email = "  "
	f.Position = ""
	f.Password = "abc" // later rules are not reached

	err := f.Validate(ModeCreate, activeDepartments)
	require.ErrorIs(t, err, ErrMissingFields)

	var formErr *FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, []string{"Email", "Position"}, formErr.Missing)
	assert.Contains(t, err.Error(), "Email, Position")
}

func TestValidate_AccountNameDefaultsToFullName(t *testing.T) {
	f := validForm()
	f.AccountName = ""
	require.NoError(t, f.Validate(ModeCreate, activeDepartments))

	f.FirstName, f.LastName = "", ""
	err := f.Validate(ModeCreate, activeDepartments)
	var formErr *FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, []string{"First Name", "Last Name", "Account Name"}, formErr.Missing)
}

func TestValidate_Salary(t *testing.T) {
	for _, salary := range []string{"0", "-10", "abc", "NaN", "Inf"} {
		f := validForm()
		f.Salary = salary
		assert.ErrorIs(t, f.Validate(ModeCreate, activeDepartments), ErrInvalidSalary, salary)
	}
}

func TestValidate_PasswordMismatchOnCreate(t *testing.T) {
	f := validForm()
	f.Password = "abc"
	f.ConfirmPassword = "xyz"

	err := f.Validate(ModeCreate, activeDepartments)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, "abc", f.Password, "fields keep their values")
}

func TestValidate_PasswordRules(t *testing.T) {
	f := validForm()
	f.Password, f.ConfirmPassword = "", ""
	assert.ErrorIs(t, f.Validate(ModeCreate, activeDepartments), ErrPasswordRequired)
	assert.NoError(t, f.Validate(ModeEdit, activeDepartments))

	f.Password = "newpass"
	assert.ErrorIs(t, f.Validate(ModeEdit, activeDepartments), ErrPasswordMismatch)
}

func TestValidate_UnknownDepartmentIsCleared(t *testing.T) {
	f := validForm()
	f.Department = "Sales"

	err := f.Validate(ModeCreate, activeDepartments)
	assert.ErrorIs(t, err, ErrUnknownDepartment)
	assert.False(t, errors.Is(err, ErrMissingFields))
	assert.Equal(t, "", f.Department)

	// Membership is case-sensitive.
	f.Department = "engineering"
	assert.ErrorIs(t, f.Validate(ModeCreate, activeDepartments), ErrUnknownDepartment)
}

func TestCheckDepartment(t *testing.T) {
	value, err := CheckDepartment("Sales", activeDepartments)
	assert.ErrorIs(t, err, ErrUnknownDepartment)
	assert.Equal(t, "", value)

	value, err = CheckDepartment("Finance", activeDepartments)
	assert.NoError(t, err)
	assert.Equal(t, "Finance", value)

	value, err = CheckDepartment(" Finance", activeDepartments)
	assert.ErrorIs(t, err, ErrUnknownDepartment, "surrounding spaces are not trimmed")
	assert.Equal(t, "", value)

	value, err = CheckDepartment("  ", activeDepartments)
	assert.NoError(t, err)
	assert.Equal(t, "", value)

	_, err = CheckDepartment("Finance", nil)
	assert.ErrorIs(t, err, ErrUnknownDepartment)
}

func TestValidate_SupplementaryRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		want   error
	}{
		{"bad email", func(f *Form) { f.Email = "john" }, ErrInvalidEmail},
		{"bad status", func(f *Form) { f.Status = "retired" }, ErrInvalidStatus},
		{"bad role", func(f *Form) { f.Role = "owner" }, ErrInvalidRole},
		{"tax over 100", func(f *Form) { f.TaxPercent = "101" }, ErrInvalidDeduction},
		{"negative health", func(f *Form) { f.HealthDeduction = "-1" }, ErrInvalidDeduction},
		{"non-numeric social", func(f *Form) { f.SocialSecurityPercent = "x" }, ErrInvalidDeduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			assert.ErrorIs(t, f.Validate(ModeCreate, activeDepartments), tt.want)
		})
	}
}

func TestPayload_NestsSectionsAndDefaultsName(t *testing.T) {
	f := validForm()
	f.HealthInsurance = true
	f.MealAllowance = true

	p, err := f.Payload(ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", p.Name)
	assert.True(t, p.Salary.Equal(decimal.NewFromInt(8500000)))

	body, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, map[string]any{
		"health_insurance":    true,
		"transport_allowance": false,
		"meal_allowance":      true,
		"performance_bonus":   false,
	}, raw["benefits"])
	deductions := raw["deductions"].(map[string]any)
	assert.Equal(t, "5", deductions["tax_percent"])
	assert.Equal(t, "0", deductions["social_security_percent"])
	assert.Equal(t, "secret123", raw["password"])
}

func TestPayload_EditOmitsBlankPassword(t *testing.T) {
	f := validForm()
	f.AccountName = "jsmith"
	f.Password, f.ConfirmPassword = "", ""

	p, err := f.Payload(ModeEdit)
	require.NoError(t, err)
	assert.Equal(t, "jsmith", p.Name)

	body, err := json.Marshal(p)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	_, hasPassword := raw["password"]
	assert.False(t, hasPassword)
	_, hasConfirm := raw["password_confirmation"]
	assert.False(t, hasConfirm)
}

func TestEmployeePayload_ToEmployee(t *testing.T) {
	body := `{"id": 9, "employee_code": "EMP-9", "first_name": "Ana", "last_name": "Lee",
		"department": {"id": 1, "name": "Finance"}, "position": "Analyst", "salary": "7000000.50",
		"start_date": "2024-01-15T00:00:00.000000Z", "status": "on_leave",
		"user": {"name": "ana", "role": "hr"}, "benefits": {"health_insurance": 1, "meal_allowance": "0"}}`

	var p EmployeePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	e := p.ToEmployee()

	assert.Equal(t, "9", e.ID)
	assert.Equal(t, "Finance", e.Department)
	assert.Equal(t, "Analyst", e.Position)
	assert.Equal(t, "2024-01-15", e.StartDate)
	assert.Equal(t, StatusOnLeave, e.Status)
	assert.Equal(t, "7000000.5", e.Salary.String())
	require.NotNil(t, e.Account)
	assert.Equal(t, RoleHR, e.Account.Role)
	require.NotNil(t, e.Benefits)
	assert.True(t, e.Benefits.HealthInsurance)
	assert.Nil(t, e.Deductions)
	assert.Equal(t, "Ana Lee", e.FullName())

	f := FormFromEmployee(e)
	assert.Equal(t, "ana", f.AccountName)
	assert.Equal(t, "", f.Password)
}
