package engine

import "fmt"

// LegalModeError reports an operation that requires legal mode being
// attempted when its preconditions do not hold. It is a bug in the caller,
// not an input error, and is raised as a panic carrying the move stack for
// diagnosis.
type LegalModeError struct {
	Msg       string
	MoveStack []Move
}

func (e *LegalModeError) Error() string {
	return fmt.Sprintf("legal mode violation: %s (move stack: %v)", e.Msg, e.MoveStack)
}

// InvariantError reports a divergence between the board's redundant
// structures or an impossible piece configuration. Always a bug; the
// process fails fast.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}
