package employee

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

// Payload is the composite create/update body sent upstream.
type Payload struct {
	EmployeeCode         string            `json:"employee_code"`
	FirstName            string            `json:"first_name"`
	LastName             string            `json:"last_name"`
	Email                string            `json:"email"`
	Phone                string            `json:"phone"`
	DateOfBirth          string            `json:"date_of_birth"`
	Address              string            `json:"address"`
	Department           string            `json:"department"`
	Position             string            `json:"position"`
	StartDate            string            `json:"start_date"`
	Status               string            `json:"status"`
	Salary               decimal.Decimal   `json:"salary"`
	Name                 string            `json:"name"`
	Role                 string            `json:"role"`
	Password             string            `json:"password,omitempty"`
	PasswordConfirmation string            `json:"password_confirmation,omitempty"`
	Benefits             BenefitsPayload   `json:"benefits"`
	Deductions           DeductionsPayload `json:"deductions"`
}

type BenefitsPayload struct {
	HealthInsurance    bool `json:"health_insurance"`
	TransportAllowance bool `json:"transport_allowance"`
	MealAllowance      bool `json:"meal_allowance"`
	PerformanceBonus   bool `json:"performance_bonus"`
}

type DeductionsPayload struct {
	TaxPercent            decimal.Decimal `json:"tax_percent"`
	SocialSecurityPercent decimal.Decimal `json:"social_security_percent"`
	HealthDeduction       decimal.Decimal `json:"health_deduction"`
}

// SubmitResult tells the page where to go after a successful save.
type SubmitResult struct {
	ID              string        `json:"id"`
	Message         string        `json:"message"`
	RedirectURL     string        `json:"redirect_url"`
	RedirectAfter   time.Duration `json:"-"`
	RedirectAfterMS int64         `json:"redirect_after_ms"`
}

// StatusRequest toggles an employee between active and inactive.
type StatusRequest struct {
	Status string `json:"status"`
}

// nameRef accepts either "Sales" or {"name": "Sales"}.
type nameRef string

func (n *nameRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*n = nameRef(obj.Name)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = nameRef(s)
	return nil
}

// EmployeePayload is an employee as the upstream sends it.
type EmployeePayload struct {
	ID           apiclient.ID    `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	DateOfBirth  string          `json:"date_of_birth"`
	Address      string          `json:"address"`
	Department   nameRef         `json:"department"`
	Position     nameRef         `json:"position"`
	StartDate    string          `json:"start_date"`
	Salary       apiclient.Float `json:"salary"`
	Status       string          `json:"status"`
	User         *struct {
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"user"`
	Benefits *struct {
		HealthInsurance    apiclient.Bool `json:"health_insurance"`
		TransportAllowance apiclient.Bool `json:"transport_allowance"`
		MealAllowance      apiclient.Bool `json:"meal_allowance"`
		PerformanceBonus   apiclient.Bool `json:"performance_bonus"`
	} `json:"benefits"`
	Deductions *struct {
		TaxPercent            apiclient.Float `json:"tax_percent"`
		SocialSecurityPercent apiclient.Float `json:"social_security_percent"`
		HealthDeduction       apiclient.Float `json:"health_deduction"`
	} `json:"deductions"`
}

func dateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func (p EmployeePayload) ToEmployee() Employee {
	e := Employee{
		ID:           string(p.ID),
		EmployeeCode: p.EmployeeCode,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		DateOfBirth:  dateOnly(p.DateOfBirth),
		Address:      p.Address,
		Department:   string(p.Department),
		Position:     string(p.Position),
		StartDate:    dateOnly(p.StartDate),
		Salary:       decimal.NewFromFloat(float64(p.Salary)),
		Status:       Status(p.Status),
	}
	if p.User != nil {
		e.Account = &Account{Name: p.User.Name, Role: Role(p.User.Role)}
	}
	if p.Benefits != nil {
		e.Benefits = &Benefits{
			HealthInsurance:    bool(p.Benefits.HealthInsurance),
			TransportAllowance: bool(p.Benefits.TransportAllowance),
			MealAllowance:      bool(p.Benefits.MealAllowance),
			PerformanceBonus:   bool(p.Benefits.PerformanceBonus),
		}
	}
	if p.Deductions != nil {
		e.Deductions = &Deductions{
			TaxPercent:            decimal.NewFromFloat(float64(p.Deductions.TaxPercent)),
			SocialSecurityPercent: decimal.NewFromFloat(float64(p.Deductions.SocialSecurityPercent)),
			HealthDeduction:       decimal.NewFromFloat(float64(p.Deductions.HealthDeduction)),
		}
	}
	return e
}

// ListConfig searches employees by code, full name and email and sorts them by display name.
var ListConfig = listquery.Config[Employee]{
	SearchFields: []func(Employee) string{
		func(e Employee) string { return e.EmployeeCode },
		Employee.FullName,
		func(e Employee) string { return e.Email },
	},
	SortKeys: map[string]func(a, b Employee) int{
		"employee_code": listquery.By(func(e Employee) string { return e.EmployeeCode }),
		"department":    listquery.By(func(e Employee) string { return e.Department }),
		"status":        listquery.By(func(e Employee) string { return string(e.Status) }),
	},
	DefaultSort: listquery.By(Employee.FullName),
}
