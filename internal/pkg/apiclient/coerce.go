package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Loose wire types. The upstream serializes ids as numbers or strings,
// booleans as true/1/"1", and timestamps in several layouts.

// ID accepts a JSON string or number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

// Bool accepts true/false, 0/1 and their string forms.
type Bool bool

func (v *Bool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.ToLower(string(b)), `"`)
	switch s {
	case "true", "1", "yes":
		*v = true
	case "false", "0", "no", "", "null":
		*v = false
	default:
		return fmt.Errorf("invalid boolean %s", string(b))
	}
	return nil
}

// Float accepts a JSON number or a numeric string. Null and "" decode to nil via *Float.
type Float float64

func (v *Float) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", string(b))
	}
	*v = Float(f)
	return nil
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var floatingLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses the timestamp layouts the upstream is known to send.
// Layouts without a zone are read in loc and reported as not zoned.
func parseTimestamp(s string, loc *time.Location) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("empty time string")
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range floatingLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("failed to parse time: %v", s)
}

// Timestamp is a nullable upstream timestamp. A value sent without a zone
// is Floating and holds its wall clock in UTC until placed with In.
type Timestamp struct {
	Time     time.Time
	Valid    bool
	Floating bool
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s", string(b))
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*ts = Timestamp{}
		return nil
	}
	t, zoned, err := parseTimestamp(*s, time.UTC)
	if err != nil {
		return err
	}
	*ts = Timestamp{Time: t, Valid: true, Floating: !zoned}
	return nil
}

// In returns ts on loc's clock. A floating value keeps its wall clock and
// takes loc as its zone.
func (ts Timestamp) In(loc *time.Location) Timestamp {
	if !ts.Valid || loc == nil {
		return ts
	}
	if ts.Floating {
		t := ts.Time
		ts.Time = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
		ts.Floating = false
		return ts
	}
	ts.Time = ts.Time.In(loc)
	return ts
}

// Ptr returns nil for an absent timestamp.
func (ts Timestamp) Ptr() *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
