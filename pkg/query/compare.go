package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Compare orders two attribute values, returning -1, 0, or 1.
//
// When both values are textual and both parse fully as numbers, they compare
// numerically; otherwise they compare case-insensitively as text. The
// coercion rule is applied to both sides or neither, never to one. Native
// numeric and time values compare directly.
func Compare(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	na, aNum := asNumber(a)
	nb, bNum := asNumber(b)
	if aNum && bNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	sa := strings.ToLower(asString(a))
	sb := strings.ToLower(asString(b))
	return strings.Compare(sa, sb)
}

// asNumber reports whether v is numeric, either natively or as a string that
// parses fully as a number.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		if n == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
