package appointment

import "github.com/bellenoire/salon-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ActiveStatuses are the statuses that hold a slot. Exactly one active
// appointment may exist per (worker, date, time).
var ActiveStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusInProgress),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Active() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// ===============================
// Transitions
// ===============================

// Effect names the side effects a transition carries. The caller runs
// them; the table decides them.
type Effect int

const (
	EffectNone Effect = iota
	// EffectReward: client counters + loyalty ledger entry +
	// notification, all in one transaction.
	EffectReward
)

var transitions = map[Status]map[Status]Effect{
	StatusPending: {
		StatusConfirmed: EffectNone,
		StatusCancelled: EffectNone,
	},
	StatusConfirmed: {
		StatusInProgress: EffectNone,
		StatusCancelled:  EffectNone,
	},
	StatusInProgress: {
		StatusCompleted: EffectReward,
		StatusCancelled: EffectNone,
	},
}

// Transition validates from→to against the table and returns the effect
// to dispatch. Terminal states (completed, cancelled) have no exits.
func Transition(from, to Status) (Effect, error) {
	if next, ok := transitions[from]; ok {
		if eff, ok := next[to]; ok {
			return eff, nil
		}
	}
	return EffectNone, httperr.ErrBusiness("invalid_transition")
}

func InitialStatus() Status {
	return StatusPending
}
