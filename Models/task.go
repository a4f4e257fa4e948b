package Models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. REJECTED is part of the enum the clients know about but the
// reject flow returns a task to IN_PROGRESS, so it is never written today.
const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusInReview   = "IN_REVIEW"
	TaskStatusDone       = "DONE"
	TaskStatusLate       = "LATE"
	TaskStatusRejected   = "REJECTED"
)

// IsValidTaskStatus reports whether s is one of the persisted status values.
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusInReview,
		TaskStatusDone, TaskStatusLate, TaskStatusRejected:
		return true
	}
	return false
}

type Task struct {
	gorm.Model
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	AreaID          uint        `json:"area_id"`
	EmployeeID      *uint       `json:"employee_id"`
	ScheduledDate   time.Time   `json:"scheduled_date"`
	Status          string      `json:"status" gorm:"default:'PENDING'"`
	RejectedComment string      `json:"rejected_comment"`
	RejectedAt      *time.Time  `json:"rejected_at"`
	RejectedByID    *uint       `json:"rejected_by_id"`
	Photos          []TaskPhoto `json:"photos,omitempty"`
}
