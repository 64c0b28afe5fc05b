package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record is the decoded sidecar document. Only the capture-time field is
// consumed; the exporter writes many others (geo data, people, view counts)
// that reconciliation never needs.
type Record struct {
	PhotoTakenTime *TakenTime `json:"photoTakenTime"`
}

// TakenTime carries the capture moment as epoch seconds.
type TakenTime struct {
	Timestamp EpochValue `json:"timestamp"`
}

// EpochValue decodes the exporter's epoch-seconds encoding. Takeout writes
// the value as a JSON string; bare numbers are accepted as well. A value that
// does not parse as whole seconds leaves the field unset, so the item is
// handled as missing-timestamp rather than failing the whole record.
type EpochValue struct {
	seconds int64
	ok      bool
}

func (v *EpochValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil
		}
		v.seconds, v.ok = n, true
	case float64:
		n := int64(val)
		if float64(n) != val {
			return nil
		}
		v.seconds, v.ok = n, true
	}
	return nil
}

// Seconds returns the epoch value and whether one was present and parseable.
func (v EpochValue) Seconds() (int64, bool) {
	if !v.ok {
		return 0, false
	}
	return v.seconds, true
}

// Timestamp returns the record's capture time as epoch seconds. The boolean
// is false when the field is absent, empty, or unparseable.
func (r Record) Timestamp() (int64, bool) {
	if r.PhotoTakenTime == nil {
		return 0, false
	}
	return r.PhotoTakenTime.Timestamp.Seconds()
}

// ReadFile loads and decodes the sidecar at path.
func ReadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read sidecar: %w", err)
	}
	rec, err := Parse(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Parse decodes a sidecar document.
func Parse(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse sidecar: %w", err)
	}
	return rec, nil
}
