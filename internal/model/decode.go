package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// record is one loosely typed JSON object from the analytics API. Field names drift
// between the live API (Portuguese) and older exports (English), so every accessor
// takes a list of aliases and returns the first usable value.
type record map[string]any

func decodeRecords(data []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]record, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			out = append(out, record(m))
		}
	}
	return out, nil
}

func decodeObject(data []byte) (record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return record(m), nil
}

func (r record) has(keys ...string) bool {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return true
		}
	}
	return false
}

func (r record) text(keys ...string) string {
	for _, k := range keys {
		switch v := r[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func (r record) number(keys ...string) float64 {
	for _, k := range keys {
		if f, ok := toFloat(r[k]); ok {
			return f
		}
	}
	return 0
}

func (r record) integer(keys ...string) int64 {
	return int64(math.Round(r.number(keys...)))
}

func (r record) flag(keys ...string) bool {
	for _, k := range keys {
		switch v := r[k].(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return false
}

func (r record) money(keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := r[k].(type) {
		case json.Number:
			if d, err := decimal.NewFromString(v.String()); err == nil {
				return d
			}
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
				return d
			}
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return decimal.NewFromFloat(v)
			}
		}
	}
	return decimal.Zero
}

func (r record) object(keys ...string) record {
	for _, k := range keys {
		if m, ok := r[k].(map[string]any); ok {
			return record(m)
		}
	}
	return record{}
}

func (r record) list(keys ...string) []record {
	for _, k := range keys {
		if arr, ok := r[k].([]any); ok {
			out := make([]record, 0, len(arr))
			for _, e := range arr {
				if m, ok := e.(map[string]any); ok {
					out = append(out, record(m))
				}
			}
			return out
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
