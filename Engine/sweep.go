package Engine

import (
	"log"

	"Sanitrack/Models"
)

// SweepOverdue flags every PENDING or IN_PROGRESS task scheduled before the
// start of the current day as LATE and returns how many were flagged. A task
// already LATE no longer matches the filter, so re-running is a no-op for it.
// A failure on one task is logged and the rest of the batch continues.
func (e *TaskEngine) SweepOverdue() (int, error) {
	var overdue []Models.Task
	err := e.DB.
		Where("status IN ?", []string{Models.TaskStatusPending, Models.TaskStatusInProgress}).
		Where("scheduled_date < ?", e.today()).
		Find(&overdue).Error
	if err != nil {
		return 0, err
	}

	count := 0
	for _, task := range overdue {
		err := e.DB.Model(&Models.Task{}).
			Where("id = ?", task.ID).
			Update("status", Models.TaskStatusLate).Error
		if err != nil {
			log.Printf("Failed to mark task %d as LATE: %v", task.ID, err)
			continue
		}
		count++
	}
	return count, nil
}
