package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Record is a JSON object that keeps its keys in source order and its values as
// raw JSON. It is the pass-through payload for dataset rows, so every source
// column reaches the output unmodified.
type Record struct {
	Keys   []string
	Values map[string]json.RawMessage
}

// UnmarshalJSON decodes a JSON object while preserving key order. A repeated key
// keeps its first position and its last value. JSON null leaves r unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	r.Keys = r.Keys[:0]
	r.Values = make(map[string]json.RawMessage)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record: value for %q: %w", key, err)
		}

		if _, dup := r.Values[key]; !dup {
			r.Keys = append(r.Keys, key)
		}
		r.Values[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Get returns the raw value for key. Absent keys and JSON null report false.
func (r Record) Get(key string) (json.RawMessage, bool) {
	raw, ok := r.Values[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// String returns the value for key when it is a JSON string.
func (r Record) String(key string) (string, bool) {
	raw, ok := r.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Float returns the value for key when it is a JSON number.
func (r Record) Float(key string) (float64, bool) {
	raw, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the value for key when it is a JSON number with no fractional part.
func (r Record) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// Bool returns the value for key when it is a JSON boolean.
func (r Record) Bool(key string) (bool, bool) {
	raw, ok := r.Get(key)
	if !ok {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// Strings returns the value for key when it is a JSON array of strings.
func (r Record) Strings(key string) ([]string, bool) {
	raw, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, false
	}
	return ss, true
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
