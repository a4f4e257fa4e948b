// Package Engine implements the task lifecycle: the state machine that moves a
// task from PENDING through review to DONE, the guards that gate each
// transition, and the overdue sweep. All task state lives in the database; the
// engine keeps nothing between calls.
package Engine

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// AuditRecorder receives transition events for the compliance trail.
type AuditRecorder interface {
	Record(actorID uint, action, entityType string, entityID uint, payload map[string]interface{}) error
}

type TaskEngine struct {
	DB    *gorm.DB
	Guard *AssignmentGuard
	Audit AuditRecorder

	// Now is swappable so tests can pin "today".
	Now func() time.Time
}

func NewTaskEngine(db *gorm.DB, audit AuditRecorder) *TaskEngine {
	return &TaskEngine{
		DB:    db,
		Guard: &AssignmentGuard{DB: db},
		Audit: audit,
		Now:   time.Now,
	}
}

// today returns the start of the current calendar day. Schedule comparisons
// work at midnight granularity, not wall-clock time.
func (e *TaskEngine) today() time.Time {
	now := e.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// recordAudit is fire-and-forget: a failed audit write must never fail or roll
// back the transition it describes.
func (e *TaskEngine) recordAudit(actorID uint, action string, taskID uint, payload map[string]interface{}) {
	if e.Audit == nil {
		return
	}
	if err := e.Audit.Record(actorID, action, "Task", taskID, payload); err != nil {
		log.Printf("Failed to record audit event %s for task %d: %v", action, taskID, err)
	}
}
