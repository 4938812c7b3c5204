package fsm

import "errors"

// Status constants used by the moderation state machine.
const (
	StatusSubmitted = "submitted"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

var ErrInvalidTransition = errors.New("fsm: invalid status transition")

var transitions = map[string]map[string]struct{}{
	StatusSubmitted: {StatusPending: {}},
	StatusPending:   {StatusApproved: {}, StatusRejected: {}},
	// approved and rejected are terminal
	StatusApproved: {},
	StatusRejected: {},
}

// CanTransition returns whether a submission can move from the current
// status to the target status.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Step validates a transition and returns the new status.
func Step(from, to string) (string, error) {
	if !CanTransition(from, to) {
		return from, ErrInvalidTransition
	}
	return to, nil
}
