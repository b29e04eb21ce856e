package server

import "fmt"

// Parameter extraction helpers for tool argument maps. JSON numbers arrive
// as float64.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

func requireInts(params map[string]interface{}, keys ...string) error {
	for _, k := range keys {
		switch params[k].(type) {
		case int, int64, float64:
		default:
			return fmt.Errorf("%s parameter is required", k)
		}
	}
	return nil
}
