package cart

import "fmt"

// SessionState tracks where a register session is in the settlement
// lifecycle. Transitions are enforced by the POS service; a session in
// Submitting rejects further mutation until the submission resolves.
type SessionState int

const (
	// StateIdle means no cart is open on the register
	StateIdle SessionState = iota
	// StateBuilding means lines are being added and edited
	StateBuilding
	// StateSubmitting means a settlement is in flight
	StateSubmitting
	// StateSettled means the last submission produced an invoice
	StateSettled
	// StateFailed means the last submission was rejected or errored
	StateFailed
)

var sessionStateNames = map[SessionState]string{
	StateIdle:       "idle",
	StateBuilding:   "building",
	StateSubmitting: "submitting",
	StateSettled:    "settled",
	StateFailed:     "failed",
}

// String returns the string representation of the session state
func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// CanMutate reports whether cart lines may be edited in this state
func (s SessionState) CanMutate() bool {
	return s == StateIdle || s == StateBuilding || s == StateFailed
}

// CanSubmit reports whether a settlement may be started from this state
func (s SessionState) CanSubmit() bool {
	return s == StateBuilding || s == StateFailed
}
