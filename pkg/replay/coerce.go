package replay

import "strconv"

// The JSON decoder yields int64 for integers and float64 for anything with a
// fraction; a handful of client fields additionally flip between number and
// string across game versions. These helpers normalize all of that.

func asInt(v any) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	}
	return 0
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	}
	return 0
}

func asUint32(v any) uint32 {
	n := asInt64(v)
	if n < 0 {
		return 0
	}
	return uint32(n)
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatInt(int64(t), 10)
	}
	return ""
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	return false
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asIntStrict is the non-defaulting variant of asInt: entries that cannot be
// read as a number report false instead of 0.
func asIntStrict(v any) (int, bool) {
	switch t := v.(type) {
	case int64:
		return int(t), true
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	}
	return 0, false
}

// asIntSlice drops entries that are not numeric rather than zeroing them, so
// a malformed achievement id never turns into a lookup for id 0.
func asIntSlice(v any) []int {
	raw := asSlice(v)
	if raw == nil {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		if n, ok := asIntStrict(e); ok {
			out = append(out, n)
		}
	}
	return out
}
