package employee

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Form is the flat state of the employee create/edit page. The personal,
// account, benefits and deductions sections are edited separately but
// validated and submitted together.
type Form struct {
	// Personal
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DateOfBirth  string `json:"date_of_birth"`
	Address      string `json:"address"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	StartDate    string `json:"start_date"`
	Status       string `json:"status"`
	Salary       string `json:"salary"`

	// Account
	AccountName     string `json:"name"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	// Benefits
	HealthInsurance    bool `json:"health_insurance"`
	TransportAllowance bool `json:"transport_allowance"`
	MealAllowance      bool `json:"meal_allowance"`
	PerformanceBonus   bool `json:"performance_bonus"`

	// Deductions
	TaxPercent            string `json:"tax_percent"`
	SocialSecurityPercent string `json:"social_security_percent"`
	HealthDeduction       string `json:"health_deduction"`
}

// FormFromEmployee prefills the edit page. Passwords stay blank.
func FormFromEmployee(e Employee) Form {
	f := Form{
		EmployeeCode: e.EmployeeCode,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		DateOfBirth:  e.DateOfBirth,
		Address:      e.Address,
		Department:   e.Department,
		Position:     e.Position,
		StartDate:    e.StartDate,
		Status:       string(e.Status),
		Salary:       e.Salary.String(),
	}
	if e.Account != nil {
		f.AccountName = e.Account.Name
		f.Role = string(e.Account.Role)
	}
	if e.Benefits != nil {
		f.HealthInsurance = e.Benefits.HealthInsurance
		f.TransportAllowance = e.Benefits.TransportAllowance
		f.MealAllowance = e.Benefits.MealAllowance
		f.PerformanceBonus = e.Benefits.PerformanceBonus
	}
	if e.Deductions != nil {
		f.TaxPercent = e.Deductions.TaxPercent.String()
		f.SocialSecurityPercent = e.Deductions.SocialSecurityPercent.String()
		f.HealthDeduction = e.Deductions.HealthDeduction.String()
	}
	return f
}

// accountName is the entered login name, or "first last" when left blank.
func (f *Form) accountName() string {
	if name := strings.TrimSpace(f.AccountName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}

type requiredField struct {
	label string
	value string
}

func (f *Form) requiredFields() []requiredField {
	return []requiredField{
		{"Employee Code", f.EmployeeCode},
		{"First Name", f.FirstName},
		{"Last Name", f.LastName},
		{"Email", f.Email},
		{"Phone", f.Phone},
		{"Date of Birth", f.DateOfBirth},
		{"Address", f.Address},
		{"Department", f.Department},
		{"Position", f.Position},
		{"Start Date", f.StartDate},
		{"Status", f.Status},
		{"Account Name", f.accountName()},
		{"Role", f.Role},
	}
}

// Validate checks the form rule by rule and stops at the first failure.
// An unknown department is cleared from the form. Every other field keeps
// its entered value.
func (f *Form) Validate(mode Mode, activeDepartments []string) error {
	var missing []string
	for _, field := range f.requiredFields() {
		if validator.IsEmpty(field.value) {
			missing = append(missing, field.label)
		}
	}
	if len(missing) > 0 {
		return &FormError{
			Err:     ErrMissingFields,
			Message: fmt.Sprintf("Please fill in all required fields: %s", strings.Join(missing, ", ")),
			Missing: missing,
		}
	}

	if _, ok := validator.ParsePositiveDecimal(f.Salary); !ok {
		return &FormError{Err: ErrInvalidSalary, Field: "salary"}
	}

	if err := f.checkPassword(mode); err != nil {
		return err
	}

	cleared, err := CheckDepartment(f.Department, activeDepartments)
	if err != nil {
		f.Department = cleared
		return err
	}

	if !validator.IsValidEmail(strings.TrimSpace(f.Email)) {
		return &FormError{Err: ErrInvalidEmail, Field: "email"}
	}
	if !validator.IsInSlice(strings.TrimSpace(f.Status), Statuses) {
		return &FormError{Err: ErrInvalidStatus, Field: "status"}
	}
	if !validator.IsInSlice(strings.TrimSpace(f.Role), Roles) {
		return &FormError{Err: ErrInvalidRole, Field: "role"}
	}
	if _, err := f.deductions(); err != nil {
		return err
	}

	return nil
}

func (f *Form) checkPassword(mode Mode) error {
	if mode == ModeCreate && (f.Password == "" || f.ConfirmPassword == "") {
		return &FormError{Err: ErrPasswordRequired, Field: "password"}
	}
	if f.Password != "" && f.Password != f.ConfirmPassword {
		return &FormError{Err: ErrPasswordMismatch, Field: "confirm_password"}
	}
	return nil
}

// CheckDepartment runs when the department field loses focus. A value that is
// not exactly the name of an active department comes back cleared, with an error.
// The match is case-sensitive and surrounding spaces count.
// A blank value passes; the required-field rule reports it on submit.
func CheckDepartment(value string, activeDepartments []string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	if validator.IsInSlice(value, activeDepartments) {
		return value, nil
	}
	return "", &FormError{
		Err:     ErrUnknownDepartment,
		Field:   "department",
		Message: fmt.Sprintf("Department %q does not exist or is not active", value),
	}
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func (f *Form) deductions() (DeductionsPayload, error) {
	invalid := func(field string) error {
		return &FormError{Err: ErrInvalidDeduction, Field: field}
	}

	tax, err := parseOptionalDecimal(f.TaxPercent)
	if err != nil || !validator.IsPercentage(tax) {
		return DeductionsPayload{}, invalid("tax_percent")
	}
	social, err := parseOptionalDecimal(f.SocialSecurityPercent)
	if err != nil || !validator.IsPercentage(social) {
		return DeductionsPayload{}, invalid("social_security_percent")
	}
	health, err := parseOptionalDecimal(f.HealthDeduction)
	if err != nil || health.IsNegative() {
		return DeductionsPayload{}, invalid("health_deduction")
	}
	return DeductionsPayload{TaxPercent: tax, SocialSecurityPercent: social, HealthDeduction: health}, nil
}

// Payload assembles the composite body for a validated form. On edit a blank
// password is left out so the upstream keeps the current one.
func (f *Form) Payload(mode Mode) (Payload, error) {
	salary, ok := validator.ParsePositiveDecimal(f.Salary)
	if !ok {
		return Payload{}, &FormError{Err: ErrInvalidSalary, Field: "salary"}
	}
	deductions, err := f.deductions()
	if err != nil {
		return Payload{}, err
	}

	p := Payload{
		EmployeeCode: strings.TrimSpace(f.EmployeeCode),
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        strings.TrimSpace(f.Email),
		Phone:        strings.TrimSpace(f.Phone),
		DateOfBirth:  strings.TrimSpace(f.DateOfBirth),
		Address:      strings.TrimSpace(f.Address),
		Department:   strings.TrimSpace(f.Department),
		Position:     strings.TrimSpace(f.Position),
		StartDate:    strings.TrimSpace(f.StartDate),
		Status:       strings.TrimSpace(f.Status),
		Salary:       salary,
		Name:         f.accountName(),
		Role:         strings.TrimSpace(f.Role),
		Benefits: BenefitsPayload{
			HealthInsurance:    f.HealthInsurance,
			TransportAllowance: f.TransportAllowance,
			MealAllowance:      f.MealAllowance,
			PerformanceBonus:   f.PerformanceBonus,
		},
		Deductions: deductions,
	}

	if mode == ModeCreate || f.Password != "" {
		p.Password = f.Password
		p.PasswordConfirmation = f.ConfirmPassword
	}
	return p, nil
}
