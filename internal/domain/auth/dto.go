package auth

import (
	"strings"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(r.Email)

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address, e.g. user@example.com",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// User is the signed-in account as returned by /me.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}

type UserPayload struct {
	ID         apiclient.ID `json:"id"`
	Name       string       `json:"name"`
	FullName   string       `json:"full_name"`
	Email      string       `json:"email"`
	Role       string       `json:"role"`
	EmployeeID apiclient.ID `json:"employee_id"`
	Employee   *struct {
		ID apiclient.ID `json:"id"`
	} `json:"employee"`
}

func (p UserPayload) ToUser() User {
	u := User{
		ID:         string(p.ID),
		Name:       p.Name,
		Email:      p.Email,
		Role:       p.Role,
		EmployeeID: string(p.EmployeeID),
	}
	if u.Name == "" {
		u.Name = p.FullName
	}
	if u.EmployeeID == "" && p.Employee != nil {
		u.EmployeeID = string(p.Employee.ID)
	}
	return u
}

// LoginPayload covers the token field names seen on login responses.
type LoginPayload struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
	User        *UserPayload `json:"user"`
}

func (p LoginPayload) BearerToken() string {
	if p.Token != "" {
		return p.Token
	}
	return p.AccessToken
}

type LoginResponse struct {
	User        User   `json:"user"`
	RedirectURL string `json:"redirect_url"`
}
