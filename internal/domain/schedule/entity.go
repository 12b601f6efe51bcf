package schedule

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type WorkSchedule struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	WorkingDays []string        `json:"working_days"`
	HoursPerDay decimal.Decimal `json:"hours_per_day"`
	Notes       string          `json:"notes"`
}

// Week lists weekday tokens in calendar order.
var Week = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func dayIndex(token string) int {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) < 3 {
		return -1
	}
	for i, day := range Week {
		if t == day || t == day[:3] {
			return i
		}
	}
	return -1
}

// NormalizeDays maps tokens like "Mon" or "monday" to a sorted, de-duplicated
// weekday set. It reports the first token it cannot read.
func NormalizeDays(tokens []string) ([]string, string, bool) {
	seen := make([]bool, len(Week))
	for _, token := range tokens {
		i := dayIndex(token)
		if i < 0 {
			return nil, token, false
		}
		seen[i] = true
	}
	days := make([]string, 0, len(Week))
	for i, ok := range seen {
		if ok {
			days = append(days, Week[i])
		}
	}
	return days, "", true
}

// SameDays compares two working-day sets regardless of order and spelling.
func SameDays(a, b []string) bool {
	na, _, okA := NormalizeDays(a)
	nb, _, okB := NormalizeDays(b)
	return okA && okB && slices.Equal(na, nb)
}
