package resolve

import (
	"fmt"
	"strings"
)

// NotFoundError means a user-supplied name could not be matched to any
// canonical ID. Suggestions, when present, are ranked closest-first and
// belong in the message shown to the caller.
type NotFoundError struct {
	Kind        string // "hero", "item", "lane", "stat field", "player"
	Input       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("%s %q not found. Did you mean: %s?", e.Kind, e.Input, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Input)
}

// RangeError means a numeric input fell outside its valid domain.
type RangeError struct {
	Kind string
	Got  int
	Min  int
	Max  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d-%d, got %d", e.Kind, e.Min, e.Max, e.Got)
}
