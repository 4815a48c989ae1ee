package sim

import "fmt"

// ActionError indicates that a scenario script is malformed.
type ActionError struct {
	// Index is the zero-based action index, or -1 for scenario-level problems
	Index int

	// Op is the action op name, if one was given
	Op string

	// Reason describes what is wrong
	Reason string
}

func (e *ActionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid scenario: %s", e.Reason)
	}
	if e.Op == "" {
		return fmt.Sprintf("invalid scenario action %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid scenario action %d (%s): %s", e.Index, e.Op, e.Reason)
}

// AssertionError indicates that a scenario assert action failed.
type AssertionError struct {
	// Index is the zero-based index of the assert action
	Index int

	// Field names the checked property: mode, cycles, waiting, or step
	Field string

	// Want is the expected value from the script
	Want string

	// Got is the observed value
	Got string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion at action %d failed: %s = %s, want %s",
		e.Index, e.Field, e.Got, e.Want)
}
