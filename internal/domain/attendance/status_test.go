package attendance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2024-03-04 "+hhmm)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestDeriveTodayStatus(t *testing.T) {
	records := []Record{
		{ID: "1", Date: "2024-03-03", CheckIn: at("09:00"), CheckOut: at("17:00")},
		{ID: "2", Date: "2024-03-04", CheckIn: at("09:05")},
	}

	got := DeriveTodayStatus(records, "2024-03-04")
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)

	assert.Nil(t, DeriveTodayStatus(records, "2024-03-05"))
	assert.Nil(t, DeriveTodayStatus(nil, "2024-03-05"))

	dup := append(records, Record{ID: "3", Date: "2024-03-04"})
	assert.NotPanics(t, func() { DeriveTodayStatus(dup, "2024-03-04") })
	assert.Equal(t, "2", DeriveTodayStatus(dup, "2024-03-04").ID)
}

func TestTransitionsAreMutuallyExclusive(t *testing.T) {
	tests := []struct {
		name     string
		status   *Record
		clockIn  bool
		clockOut bool
		state    State
	}{
		{"no record", nil, true, false, StateNotClockedIn},
		{"record without check-in", &Record{Date: "2024-03-04"}, true, false, StateNotClockedIn},
		{"clocked in", &Record{CheckIn: at("09:00")}, false, true, StateClockedIn},
		{"clocked out", &Record{CheckIn: at("09:00"), CheckOut: at("17:00")}, false, false, StateClockedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.clockIn, CanClockIn(tt.status))
			assert.Equal(t, tt.clockOut, CanClockOut(tt.status))
			assert.False(t, CanClockIn(tt.status) && CanClockOut(tt.status))
			assert.Equal(t, tt.state, StateOf(tt.status))
		})
	}
}

func TestComputeTotalHours(t *testing.T) {
	assert.Equal(t, 8.5, ComputeTotalHours(*at("09:00"), *at("17:30")))
	assert.Equal(t, 0.33, ComputeTotalHours(*at("09:00"), *at("09:20")))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8.50", FormatHours(&Record{CheckIn: at("09:00"), CheckOut: at("17:30")}))
	assert.Equal(t, HoursPlaceholder, FormatHours(&Record{CheckIn: at("09:00")}))
	assert.Equal(t, HoursPlaceholder, FormatHours(nil))

	server := 7.456
	assert.Equal(t, "7.46", FormatHours(&Record{CheckIn: at("09:00"), CheckOut: at("17:30"), TotalHours: &server}))
}

func TestMerge(t *testing.T) {
	records := []Record{
		{ID: "1", Date: "2024-03-03"},
		{ID: "2", Date: "2024-03-04", CheckIn: at("09:00")},
	}

	merged := Merge(records, Record{ID: "2", Date: "2024-03-04", CheckIn: at("09:00"), CheckOut: at("17:00")})
	require.Len(t, merged, 2)
	assert.NotNil(t, merged[1].CheckOut)
	assert.Nil(t, records[1].CheckOut, "input must not change")

	merged = Merge(records, Record{ID: "3", Date: "2024-03-05", CheckIn: at("08:55")})
	assert.Len(t, merged, 3)
	assert.Equal(t, "3", merged[2].ID)
}

func TestNewTodayStatus(t *testing.T) {
	records := []Record{{ID: "2", Date: "2024-03-04", CheckIn: at("09:20"), IsLate: true}}

	st := NewTodayStatus(records, "2024-03-04")
	assert.Equal(t, StateClockedIn, st.State)
	assert.True(t, st.CanClockOut)
	assert.False(t, st.CanClockIn)
	assert.True(t, st.IsLate)
	assert.Equal(t, HoursPlaceholder, st.HoursDisplay)

	st = NewTodayStatus(records, "2024-03-05")
	assert.Nil(t, st.Record)
	assert.True(t, st.CanClockIn)
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Date: "2024-03-01", CheckIn: at("09:00"), CheckOut: at("17:30"), IsLate: true},
		{Date: "2024-03-02", CheckIn: at("09:00"), CheckOut: at("17:00")},
		{Date: "2024-03-04", CheckIn: at("09:00")},
		{Date: "2024-03-05"},
	}
	assert.Equal(t, Summary{Days: 3, LateDays: 1, OpenDays: 1, TotalHours: 16.5}, Summarize(records))
}

func TestToday(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	now := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", Today(now, jakarta))
	assert.Equal(t, "2024-03-04", Today(now, nil))
}

func TestRecordPayload_ToRecord(t *testing.T) {
	var p RecordPayload
	body := `{"id": 12, "employee_id": "7", "date": "2024-03-04T00:00:00.000000Z",
		"check_in": "2024-03-04 09:00:00", "check_out": "2024-03-04 17:30:00", "is_late": 1}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	rec, err := p.ToRecord(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "12", rec.ID)
	assert.Equal(t, "2024-03-04", rec.Date)
	assert.True(t, rec.IsLate)
	require.NotNil(t, rec.TotalHours)
	assert.Equal(t, 8.5, *rec.TotalHours)
}

func TestRecordPayload_LegacyFields(t *testing.T) {
	var p RecordPayload
	body := `{"id": "a", "clock_in": "2024-03-04T09:00:00Z", "clock_out": null, "working_hours": null}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	rec, err := p.ToRecord(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", rec.Date)
	assert.NotNil(t, rec.CheckIn)
	assert.Nil(t, rec.CheckOut)
	assert.Nil(t, rec.TotalHours)
}

func TestRecordPayload_DatelessRecordUsesLocalDay(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	var p RecordPayload
	require.NoError(t, json.Unmarshal([]byte(`{"id": 5, "check_in": "2024-03-04T18:00:00Z"}`), &p))
	rec, err := p.ToRecord(jakarta)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", rec.Date)
	assert.Equal(t, 1, rec.CheckIn.Hour())

	now := time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)
	today := DeriveTodayStatus([]Record{rec}, Today(now, jakarta))
	require.NotNil(t, today)
	assert.Equal(t, "5", today.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": 6, "check_in": "2024-03-05 01:00:00"}`), &p))
	rec, err = p.ToRecord(jakarta)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", rec.Date)
	assert.True(t, rec.CheckIn.Equal(time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)))
}

func TestRecordPayload_RejectsCheckOutBeforeCheckIn(t *testing.T) {
	var p RecordPayload
	body := `{"id": 1, "date": "2024-03-04", "check_in": "2024-03-04 17:00:00", "check_out": "2024-03-04 09:00:00"}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	_, err := p.ToRecord(time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	p = RecordPayload{Date: "2024-03-04"}
	require.NoError(t, json.Unmarshal([]byte(`{"check_out": "2024-03-04 09:00:00", "date": "2024-03-04"}`), &p))
	_, err = p.ToRecord(time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
