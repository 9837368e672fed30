// Package engine implements the competition state engine: the tag ladder,
// team/card formation, round submission gating, and leaderboard computation.
// Every operation follows the same shape: validate preconditions against the
// current LeagueState, compute the full next state, then mutate — so a failed
// call never leaves a partial change behind. Nothing here touches storage or
// HTTP; handlers load the document, call in, and save the whole thing back.
package engine

import "fmt"

// FailureKind classifies why an operation was refused. Handlers map these to
// HTTP statuses; the engine itself only cares that the reason is actionable.
type FailureKind string

const (
	// KindPrecondition means the operation is valid in principle but not in
	// the league's current state (e.g. scoring a committed round, checking in
	// after the roster locked).
	KindPrecondition FailureKind = "precondition"

	// KindInfeasible means the inputs cannot satisfy the structural
	// constraints at all (e.g. a roster that cannot be paired). The caller
	// must change the inputs and retry.
	KindInfeasible FailureKind = "infeasible"
)

// Error is the engine's failure type. Reason is always a human-actionable
// sentence suitable for surfacing directly to an admin.
type Error struct {
	Kind   FailureKind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// preconditionf builds a precondition-violation error.
func preconditionf(format string, args ...any) *Error {
	return &Error{Kind: KindPrecondition, Reason: fmt.Sprintf(format, args...)}
}

// infeasiblef builds a structural-infeasibility error.
func infeasiblef(format string, args ...any) *Error {
	return &Error{Kind: KindInfeasible, Reason: fmt.Sprintf(format, args...)}
}

// KindOf returns the failure kind of an engine error, or "" for any other
// error value (including nil).
func KindOf(err error) FailureKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
