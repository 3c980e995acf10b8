package entity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly carries a calendar day with no time-of-day. Request payloads and
// the occupied-dates feeds exchange dates in this form; comparison always
// happens on the UTC day.
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date %s, expected \"YYYY-MM-DD\"", b)
	}
	s := string(b[1 : len(b)-1]) // Remove quotes
	t, err := time.ParseInLocation(dateOnlyLayout, s, time.UTC)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.UTC().Format(dateOnlyLayout) + `"`), nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		d.Time = v
	case []byte:
		t, err := time.ParseInLocation(dateOnlyLayout, string(v), time.UTC)
		if err != nil {
			return err
		}
		d.Time = t
	default:
		return fmt.Errorf("cannot scan type %T into DateOnly", value)
	}
	return nil
}
