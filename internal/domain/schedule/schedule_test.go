package schedule

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDays(t *testing.T) {
	days, _, ok := NormalizeDays([]string{"Fri", "monday", "WED", "mon"})
	require.True(t, ok)
	assert.Equal(t, []string{"monday", "wednesday", "friday"}, days)

	_, bad, ok := NormalizeDays([]string{"monday", "funday"})
	assert.False(t, ok)
	assert.Equal(t, "funday", bad)
}

func TestSameDaysIgnoresOrder(t *testing.T) {
	assert.True(t, SameDays([]string{"friday", "monday"}, []string{"Mon", "Fri"}))
	assert.False(t, SameDays([]string{"friday"}, []string{"monday"}))
}

func TestWorkSchedulePayload_DayShapes(t *testing.T) {
	var fromArray, fromString WorkSchedulePayload
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "name": "Office", "working_days": ["Tue", "Mon"], "hours_per_day": "7.5"}`), &fromArray))
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "name": "Office", "working_days": "monday, tuesday", "hours_per_day": 8}`), &fromString))

	a, b := fromArray.ToWorkSchedule(), fromString.ToWorkSchedule()
	assert.Equal(t, a.WorkingDays, b.WorkingDays)
	assert.True(t, a.HoursPerDay.Equal(decimal.RequireFromString("7.5")))
}

func TestWorkScheduleRequest_Validate(t *testing.T) {
	req := WorkScheduleRequest{Name: "Shift", WorkingDays: []string{"sat", "sun"}, HoursPerDay: "8"}
	require.NoError(t, req.Validate())
	assert.Equal(t, []string{"saturday", "sunday"}, req.WorkingDays)
	assert.True(t, req.Body().HoursPerDay.Equal(decimal.NewFromInt(8)))

	for _, hours := range []string{"0", "25", "x"} {
		req := WorkScheduleRequest{Name: "Shift", WorkingDays: []string{"mon"}, HoursPerDay: hours}
		assert.Error(t, req.Validate(), hours)
	}

	req = WorkScheduleRequest{Name: "Shift", HoursPerDay: "8"}
	assert.Error(t, req.Validate())
}
