package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	DateOfBirth  string          `json:"date_of_birth"`
	Address      string          `json:"address"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	StartDate    string          `json:"start_date"`
	Salary       decimal.Decimal `json:"salary"`
	Status       Status          `json:"status"`
	Account      *Account        `json:"account,omitempty"`
	Benefits     *Benefits       `json:"benefits,omitempty"`
	Deductions   *Deductions     `json:"deductions,omitempty"`
}

// FullName is first and last name joined and trimmed.
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"
)

var Statuses = []string{string(StatusActive), string(StatusInactive), string(StatusOnLeave)}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

var Roles = []string{string(RoleEmployee), string(RoleManager), string(RoleHR), string(RoleAdmin)}

// Account is the login linked to an employee.
type Account struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type Benefits struct {
	HealthInsurance    bool `json:"health_insurance"`
	TransportAllowance bool `json:"transport_allowance"`
	MealAllowance      bool `json:"meal_allowance"`
	PerformanceBonus   bool `json:"performance_bonus"`
}

// Deductions are per-employee. Tax and social security are percentages,
// health is a fixed amount.
type Deductions struct {
	TaxPercent            decimal.Decimal `json:"tax_percent"`
	SocialSecurityPercent decimal.Decimal `json:"social_security_percent"`
	HealthDeduction       decimal.Decimal `json:"health_deduction"`
}
