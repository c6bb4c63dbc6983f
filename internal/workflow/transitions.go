package workflow

import "fixitfast/backend/internal/models"

// transitions is the legal edge set of the complaint lifecycle:
// Pending may move to InProgress or Rejected, InProgress to Resolved or
// Rejected. Resolved and Rejected are terminal.
var transitions = map[models.Status][]models.Status{
	models.StatusPending:    {models.StatusInProgress, models.StatusRejected},
	models.StatusInProgress: {models.StatusResolved, models.StatusRejected},
	models.StatusResolved:   {},
	models.StatusRejected:   {},
}

// CanTransition reports whether a complaint in state from may move to state to.
func CanTransition(from, to models.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is legal from s.
func IsTerminal(s models.Status) bool {
	return s == models.StatusResolved || s == models.StatusRejected
}
