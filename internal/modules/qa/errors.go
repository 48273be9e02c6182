package qa

import "fmt"

// PlanningError means the planner's output could not be interpreted. It is
// the only failure the pipeline recovers from locally: the question proceeds
// with an empty category set.
type PlanningError struct {
	Raw string
	Err error
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("metadata planning failed: %v", e.Err)
}

func (e *PlanningError) Unwrap() error { return e.Err }

// WriteRejectedError means a candidate query tripped the read-only guard.
// The query carried here was never executed.
type WriteRejectedError struct {
	Query string
	Match string
}

func (e *WriteRejectedError) Error() string {
	return fmt.Sprintf("query rejected by read-only guard (matched %q): %s", e.Match, e.Query)
}

// ExecutionError wraps a graph executor failure for a query that passed the
// guard.
type ExecutionError struct {
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("graph query failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// GenerationError wraps a completion-service failure in the cypher or answer
// stage.
type GenerationError struct {
	Stage string // "cypher" or "answer"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
