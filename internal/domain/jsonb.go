package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB column support for the document-shaped user and problem fields.

func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func jsonbScan(src interface{}, dst interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
}

func (s SolvedSet) Value() (driver.Value, error) {
	if s == nil {
		return jsonbValue(map[string]time.Time{})
	}
	return jsonbValue(map[string]time.Time(s))
}

func (s *SolvedSet) Scan(src interface{}) error {
	return jsonbScan(src, s)
}

func (b BadgeList) Value() (driver.Value, error) {
	if b == nil {
		return jsonbValue(BadgeList{})
	}
	return jsonbValue([]Badge(b))
}

func (b *BadgeList) Scan(src interface{}) error {
	return jsonbScan(src, b)
}

func (e ExampleList) Value() (driver.Value, error) {
	if e == nil {
		return jsonbValue(ExampleList{})
	}
	return jsonbValue([]Example(e))
}

func (e *ExampleList) Scan(src interface{}) error {
	return jsonbScan(src, e)
}

func (h HintList) Value() (driver.Value, error) {
	if h == nil {
		return jsonbValue(HintList{})
	}
	return jsonbValue([]string(h))
}

func (h *HintList) Scan(src interface{}) error {
	return jsonbScan(src, h)
}

func (r RowList) Value() (driver.Value, error) {
	if r == nil {
		return jsonbValue(RowList{})
	}
	return jsonbValue([]map[string]interface{}(r))
}

func (r *RowList) Scan(src interface{}) error {
	return jsonbScan(src, r)
}
