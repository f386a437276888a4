package services

import (
	"time"

	"taskboard/models"
)

// Status policy: pure predicates over (status, due date, now). Due dates are
// normalized into the reference timezone before they ever reach the store, so
// comparisons here are plain instant comparisons. A task with no due date is
// never considered past due.

// DuePassed reports whether due is strictly before now.
func DuePassed(due *time.Time, now time.Time) bool {
	return due != nil && due.Before(now)
}

// ShouldBecomeOverdue reports whether an active task's due date has passed.
func ShouldBecomeOverdue(t *models.Task, now time.Time) bool {
	return t.Status.IsActive() && DuePassed(t.DueDate, now)
}

// ShouldLeaveOverdue reports whether an overdue task's due date has been
// edited to now or later, in which case it rolls back to Pending.
func ShouldLeaveOverdue(t *models.Task, now time.Time) bool {
	return t.Status == models.StatusOverdue && t.DueDate != nil && !t.DueDate.Before(now)
}
