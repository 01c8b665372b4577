package conv

import (
	"encoding/json"
	"strconv"
)

// AsKey converts a JSON-RPC identifier to a comparable key. Numbers of any
// decoded type share one key; strings are quoted so "1" and 1 stay distinct.
// An empty key is returned for nil or unsupported values.
func AsKey(value any) string {
	switch actual := value.(type) {
	case int:
		return strconv.Itoa(actual)
	case int32:
		return strconv.FormatInt(int64(actual), 10)
	case int64:
		return strconv.FormatInt(actual, 10)
	case uint:
		return strconv.FormatUint(uint64(actual), 10)
	case uint32:
		return strconv.FormatUint(uint64(actual), 10)
	case uint64:
		return strconv.FormatUint(actual, 10)
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(actual), 'f', -1, 32)
	case json.Number:
		if f, err := actual.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return actual.String()
	case string:
		return strconv.Quote(actual)
	case *int:
		if actual != nil {
			return strconv.Itoa(*actual)
		}
	}
	return ""
}
