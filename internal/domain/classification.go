package domain

import "encoding/json"

// Default values used when a task cannot be classified by the language model.
const (
	FallbackPriority             = PriorityMedium
	FallbackCategory             = CategoryOther
	FallbackEstimatedTimeMinutes = 30
)

// Classification is the derived priority, category, time estimate and
// subtasks for a task. It lives only long enough to build a Task.
type Classification struct {
	Priority             Priority
	Category             Category
	EstimatedTimeMinutes *int
	// Subtasks is nil when the model reported none.
	Subtasks []string
	// UsedFallback is true when the values are the deterministic defaults
	// rather than a validated model response.
	UsedFallback bool
}

// FallbackClassification returns the fixed default classification.
func FallbackClassification() Classification {
	minutes := FallbackEstimatedTimeMinutes
	return Classification{
		Priority:             FallbackPriority,
		Category:             FallbackCategory,
		EstimatedTimeMinutes: &minutes,
		Subtasks:             nil,
		UsedFallback:         true,
	}
}

// SubtasksText serializes the subtasks for storage as a JSON array.
// It returns nil when there are no subtasks.
func (c Classification) SubtasksText() *string {
	if len(c.Subtasks) == 0 {
		return nil
	}

	data, err := json.Marshal(c.Subtasks)
	if err != nil {
		// A []string always marshals; keep the signature simple.
		return nil
	}

	text := string(data)
	return &text
}
