//go:build unit || e2e

package testutil

// Field sets key on the request map; a nil value removes the key.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		setOrDelete(m, key, value)
	}
}

// LineField does the same for one entry of the "lines" array of a checkout body.
func LineField(index int, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		lines, ok := m["lines"].([]any)
		if !ok || index >= len(lines) {
			return
		}
		if line, ok := lines[index].(map[string]any); ok {
			setOrDelete(line, key, value)
		}
	}
}

func setOrDelete(m map[string]any, key string, value any) {
	if value == nil {
		delete(m, key)
		return
	}
	m[key] = value
}
