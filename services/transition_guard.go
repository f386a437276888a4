package services

import (
	"time"

	"taskboard/models"
)

// Decision is the outcome of a transition check. A rejected decision carries a
// user-actionable Reason; it is feedback, not an infrastructure error.
type Decision struct {
	Allowed bool
	NoOp    bool
	Reason  string
}

const (
	reasonClosedToOverdue = "Completed or archived tasks cannot be moved to Overdue. Reopen the task first."
	reasonNotYetOverdue   = "This task is not overdue yet. Update the due date or wait until it passes."
	reasonReopenStale     = "Update the due date before reopening to Pending or In Progress."
	reasonOverdueToActive = "Update the due date before returning to Pending or In Progress."
)

// CheckTransition validates a user-initiated status change, as opposed to the
// reconciler's system-initiated corrections which bypass this guard. Rules are
// evaluated in order; the first match wins.
func CheckTransition(task *models.Task, target models.Status, now time.Time) Decision {
	current := task.Status
	duePassed := DuePassed(task.DueDate, now)

	switch {
	case target == current:
		// Nothing to change; accept without a write.
		return Decision{Allowed: true, NoOp: true}
	case target == models.StatusOverdue && current.IsClosed():
		return Decision{Reason: reasonClosedToOverdue}
	case target == models.StatusOverdue && current.IsActive() && !duePassed:
		return Decision{Reason: reasonNotYetOverdue}
	case current.IsClosed() && target.IsActive() && duePassed:
		return Decision{Reason: reasonReopenStale}
	case current == models.StatusOverdue && target.IsActive() && duePassed:
		return Decision{Reason: reasonOverdueToActive}
	}
	return Decision{Allowed: true}
}
