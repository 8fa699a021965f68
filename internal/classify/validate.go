package classify

import (
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
)

// Validate reports whether v is an acceptable classification payload:
// a mapping with a known priority and category, an optional positive
// integer estimated_time_minutes and an optional list of strings in
// subtasks. It never panics and performs no coercion.
func Validate(v any) bool {
	m, ok := asMapping(v)
	if !ok {
		return false
	}

	priority, ok := m["priority"].(string)
	if !ok || !domain.Priority(priority).Valid() {
		return false
	}

	category, ok := m["category"].(string)
	if !ok || !domain.Category(category).Valid() {
		return false
	}

	if raw, present := m["estimated_time_minutes"]; present && raw != nil {
		n, ok := asInt(raw)
		if !ok || n <= 0 {
			return false
		}
	}

	if raw, present := m["subtasks"]; present && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
	}

	return true
}

// ToClassification converts a payload accepted by Validate.
func ToClassification(v any) (domain.Classification, error) {
	if !Validate(v) {
		return domain.Classification{}, ErrInvalidPayload
	}

	m, _ := asMapping(v)
	c := domain.Classification{
		Priority: domain.Priority(m["priority"].(string)),
		Category: domain.Category(m["category"].(string)),
	}

	if raw := m["estimated_time_minutes"]; raw != nil {
		n, _ := asInt(raw)
		minutes := int(n)
		c.EstimatedTimeMinutes = &minutes
	}

	if raw, ok := m["subtasks"].([]any); ok {
		c.Subtasks = make([]string, 0, len(raw))
		for _, item := range raw {
			c.Subtasks = append(c.Subtasks, item.(string))
		}
	}

	return c, nil
}

// asMapping accepts both mapping shapes yaml.v3 can produce.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asInt accepts the integer types yaml.v3 decodes into. Floats, bools
// and numeric strings are rejected. Values beyond the int32 range are
// rejected too; no task takes that many minutes.
func asInt(v any) (int64, bool) {
	const maxMinutes = 1<<31 - 1

	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		if x > maxMinutes {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}

	if n > maxMinutes {
		return 0, false
	}
	return n, true
}
