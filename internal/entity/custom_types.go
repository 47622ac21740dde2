package entity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// BookingTime accepts both RFC3339 and the bare layout produced by the
// browser's datetime-local inputs.
type BookingTime struct {
	time.Time
}

const bookingTimeLayout = "2006-01-02T15:04"

func (bt *BookingTime) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("invalid time value: %s", string(b))
	}
	s := string(b[1 : len(b)-1]) // Remove quotes

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		bt.Time = t
		return nil
	}

	t, err := time.Parse(bookingTimeLayout, s)
	if err != nil {
		return err
	}
	bt.Time = t
	return nil
}

func (bt BookingTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + bt.Format(time.RFC3339) + `"`), nil
}

func (bt BookingTime) Value() (driver.Value, error) {
	return bt.Time, nil
}

func (bt *BookingTime) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		bt.Time = v
	case []byte:
		t, err := time.Parse("2006-01-02 15:04:05", string(v))
		if err != nil {
			return err
		}
		bt.Time = t
	default:
		return fmt.Errorf("cannot scan type %T into BookingTime", value)
	}
	return nil
}
