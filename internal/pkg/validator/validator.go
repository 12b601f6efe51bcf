package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is returned by request and form checks. HandleError turns
// it into a 422 with one message per field.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, err := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Field)
		b.WriteString(": ")
		b.WriteString(err.Message)
	}
	return b.String()
}

// ToMap keeps the first message reported for each field.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		if _, seen := result[err.Field]; !seen {
			result[err.Field] = err.Message
		}
	}
	return result
}

// Add records a failed check.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when nothing failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidDate accepts calendar dates as the upstream sends them, YYYY-MM-DD.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, dateStr)
	return date, err == nil
}

// IsInSlice is an exact, case-sensitive membership test.
func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}

// ExceedsLength reports whether s is longer than max characters.
func ExceedsLength(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// InRange reports whether f lies in [lo, hi].
func InRange(f, lo, hi float64) bool {
	return f >= lo && f <= hi
}

// ParsePositiveDecimal parses s and reports whether it is a finite number greater than zero.
func ParsePositiveDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, d.IsPositive()
}

// IsPercentage reports whether d lies in [0, 100].
func IsPercentage(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(100))
}
