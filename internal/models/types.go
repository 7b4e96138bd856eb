package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateOnly stores a calendar date without a time component and marshals as
// "YYYY-MM-DD".
type DateOnly struct {
	time.Time
}

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: t.Truncate(24 * time.Hour)}
}

func ParseDateOnly(raw string) (DateOnly, error) {
	parsed, err := time.Parse(dateOnlyLayout, strings.TrimSpace(raw))
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: parsed}, nil
}

func (d DateOnly) String() string {
	return d.Format(dateOnlyLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateOnlyLayout))
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDateOnly(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Format(dateOnlyLayout), nil
}

func (d *DateOnly) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		parsed, err := ParseDateOnly(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

// JSONObject is a free-form JSON object column (doctor availability).
type JSONObject map[string]interface{}

func (j JSONObject) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

func (j *JSONObject) Scan(value interface{}) error {
	if value == nil {
		*j = JSONObject{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONObject", value)
	}
}
