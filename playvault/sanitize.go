package playvault

import (
	"encoding/json"
	"math"
	"strconv"
)

// sanitizeAmount normalizes a raw transaction amount from an untrusted
// payload. Non-numeric input maps to 0, the result is clamped to
// [0, max] and truncated toward zero. Total: it never fails.
func sanitizeAmount(raw any, max int64) int64 {
	var f float64
	switch v := raw.(type) {
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= float64(max) {
		return max
	}
	return int64(math.Trunc(f))
}
