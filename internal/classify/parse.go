package classify

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlFence = "```yaml"
	bareFence = "```"
)

// StripFences removes a surrounding ```yaml ... ``` or ``` ... ``` block.
// Text without a complete fence pair is returned trimmed but otherwise
// unchanged. Applying it twice gives the same result as applying it once.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	switch {
	case len(text) >= len(yamlFence)+len(bareFence) &&
		strings.HasPrefix(text, yamlFence) && strings.HasSuffix(text, bareFence):
		return StripFences(text[len(yamlFence) : len(text)-len(bareFence)])
	case len(text) >= 2*len(bareFence) &&
		strings.HasPrefix(text, bareFence) && strings.HasSuffix(text, bareFence):
		return StripFences(text[len(bareFence) : len(text)-len(bareFence)])
	default:
		return text
	}
}

// Decode parses YAML text into generic Go values. Mappings become
// map[string]any, sequences []any, and integers int.
func Decode(text string) (any, error) {
	var out any
	if err := yaml.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return out, nil
}
