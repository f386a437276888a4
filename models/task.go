package models

import (
	"time"
)

// Status is a task's lifecycle state. Overdue is derived: the reconciler moves
// active tasks into it once their due date passes, and back to Pending when the
// due date is pushed into the future.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
	StatusOverdue    Status = "overdue"
)

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived, StatusOverdue:
		return true
	}
	return false
}

// IsActive reports whether the task is still being worked on.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusInProgress
}

// IsClosed reports whether the task has been finished or shelved.
func (s Status) IsClosed() bool {
	return s == StatusCompleted || s == StatusArchived
}

// Task is the persisted task record. Code is a user-facing 5-character
// alphanumeric reference and must stay unique across all tasks.
type Task struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(100)" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Status      Status     `gorm:"type:varchar(20);default:pending" json:"status"`
	Code        string     `gorm:"type:varchar(5);uniqueIndex" json:"code"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
