package config

import "math"

// Reader looks up raw setting values by key within Section.
type Reader interface {
	// Lookup returns the raw value for key and whether it is set.
	Lookup(key string) (any, bool)
}

// MapReader is a Reader over a fixed map.
type MapReader map[string]any

// Lookup implements Reader.
func (m MapReader) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Get reads key from r as a T, returning def when the key is absent, nil,
// or holds a value of a different type. Integer settings accept any of the
// numeric types file decoders produce, as long as the value is integral.
func Get[T any](r Reader, key string, def T) T {
	if r == nil {
		return def
	}
	v, ok := r.Lookup(key)
	if !ok || v == nil {
		return def
	}
	if t, ok := v.(T); ok {
		return t
	}
	if _, wantInt := any(def).(int); wantInt {
		if n, ok := toInt(v); ok {
			return any(n).(T)
		}
	}
	return def
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
