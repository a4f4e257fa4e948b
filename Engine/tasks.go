package Engine

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"Sanitrack/Models"
)

type CreateTaskInput struct {
	Title         string
	Description   string
	AreaID        uint
	EmployeeID    *uint
	ScheduledDate time.Time
}

// UpdateTaskInput is a partial patch; nil fields are left untouched.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AreaID        *uint
	EmployeeID    *uint
	ScheduledDate *time.Time
	Status        *string
}

func (e *TaskEngine) loadTask(taskID uint) (*Models.Task, error) {
	var task Models.Task
	if err := e.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "task", ID: taskID}
		}
		return nil, err
	}
	return &task, nil
}

// CreateTask validates the assignment and schedule, then persists a new
// PENDING task. All guards run before the write; either exactly one row is
// created or none.
func (e *TaskEngine) CreateTask(input CreateTaskInput) (*Models.Task, error) {
	if err := e.Guard.EnsureArea(input.AreaID); err != nil {
		return nil, err
	}
	if input.EmployeeID != nil {
		if err := e.Guard.EnsureEmployeeActive(*input.EmployeeID); err != nil {
			return nil, err
		}
	}

	scheduled := startOfDay(input.ScheduledDate)
	if scheduled.Before(e.today()) {
		return nil, guardViolation("scheduled date %s is in the past", scheduled.Format("2006-01-02"))
	}

	task := Models.Task{
		Title:         input.Title,
		Description:   input.Description,
		AreaID:        input.AreaID,
		EmployeeID:    input.EmployeeID,
		ScheduledDate: scheduled,
		Status:        Models.TaskStatusPending,
	}
	if err := e.DB.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// StartTask marks a task as picked up by the field worker.
func (e *TaskEngine) StartTask(taskID uint) (*Models.Task, error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	task.Status = Models.TaskStatusInProgress
	if err := e.DB.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// AddPhoto appends a proof-of-work photo to the task's ledger. Photos are
// accepted in any status; the review guard only checks they exist.
func (e *TaskEngine) AddPhoto(taskID uint, photoType, url, storageKey string) (*Models.TaskPhoto, error) {
	if photoType != Models.PhotoTypeBefore && photoType != Models.PhotoTypeAfter {
		return nil, guardViolation("photo type must be BEFORE or AFTER, got %q", photoType)
	}
	if _, err := e.loadTask(taskID); err != nil {
		return nil, err
	}

	photo := Models.TaskPhoto{
		TaskID:     taskID,
		Type:       photoType,
		URL:        url,
		StorageKey: storageKey,
	}
	if err := e.DB.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// RequestReview moves a task into IN_REVIEW once at least one BEFORE and one
// AFTER photo exist. Wrong status and missing photos fail with distinct
// messages so the worker app can tell the user what to fix.
func (e *TaskEngine) RequestReview(taskID uint, actorID uint) (*Models.Task, error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != Models.TaskStatusPending && task.Status != Models.TaskStatusInProgress {
		return nil, guardViolation("only a PENDING or IN_PROGRESS task can be sent for review (status: %s)", task.Status)
	}

	var beforeCount, afterCount int64
	if err := e.DB.Model(&Models.TaskPhoto{}).
		Where("task_id = ? AND type = ?", taskID, Models.PhotoTypeBefore).
		Count(&beforeCount).Error; err != nil {
		return nil, err
	}
	if err := e.DB.Model(&Models.TaskPhoto{}).
		Where("task_id = ? AND type = ?", taskID, Models.PhotoTypeAfter).
		Count(&afterCount).Error; err != nil {
		return nil, err
	}
	if beforeCount == 0 || afterCount == 0 {
		return nil, guardViolation("cannot request review: missing %s photo", missingPhotoKinds(beforeCount, afterCount))
	}

	previous := task.Status
	task.Status = Models.TaskStatusInReview
	if err := e.DB.Save(task).Error; err != nil {
		return nil, err
	}

	e.recordAudit(actorID, Models.AuditActionRequestReview, task.ID, map[string]interface{}{
		"previousStatus": previous,
		"newStatus":      task.Status,
	})
	return task, nil
}

// Approve closes out a reviewed task. Only an IN_REVIEW task can be approved.
func (e *TaskEngine) Approve(taskID uint, actorID uint) (*Models.Task, error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != Models.TaskStatusInReview {
		return nil, guardViolation("only a task IN_REVIEW can be approved (status: %s)", task.Status)
	}

	previous := task.Status
	task.Status = Models.TaskStatusDone
	if err := e.DB.Save(task).Error; err != nil {
		return nil, err
	}

	e.recordAudit(actorID, Models.AuditActionApprove, task.ID, map[string]interface{}{
		"previousStatus": previous,
		"newStatus":      task.Status,
	})
	return task, nil
}

// Reject sends a reviewed task back to the worker. The comment is mandatory
// and is stamped on the task together with who rejected it and when; only the
// most recent rejection is kept.
func (e *TaskEngine) Reject(taskID uint, actorID uint, comment, reason string) (*Models.Task, error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != Models.TaskStatusInReview {
		return nil, guardViolation("only a task IN_REVIEW can be rejected (status: %s)", task.Status)
	}
	if comment == "" {
		return nil, guardViolation("a rejection comment is required")
	}

	previous := task.Status
	now := e.Now()
	task.Status = Models.TaskStatusInProgress
	task.RejectedComment = comment
	task.RejectedAt = &now
	task.RejectedByID = &actorID
	if err := e.DB.Save(task).Error; err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"previousStatus": previous,
		"newStatus":      task.Status,
		"comment":        comment,
	}
	if reason != "" {
		payload["reason"] = reason
	}
	e.recordAudit(actorID, Models.AuditActionReject, task.ID, payload)
	return task, nil
}

// RemoveTask deletes a task and its photos. A DONE task is part of the
// compliance record and cannot be deleted.
func (e *TaskEngine) RemoveTask(taskID uint) error {
	task, err := e.loadTask(taskID)
	if err != nil {
		return err
	}
	if task.Status == Models.TaskStatusDone {
		return guardViolation("a DONE task cannot be deleted")
	}

	return e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&Models.TaskPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

// UpdateTask applies a generic field patch. It deliberately does not route a
// status change through the review guard; the apps use RequestReview for the
// guarded path and this for supervisor edits.
func (e *TaskEngine) UpdateTask(taskID uint, input UpdateTaskInput) (*Models.Task, error) {
	task, err := e.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == Models.TaskStatusDone {
		return nil, guardViolation("a DONE task cannot be edited")
	}

	if input.AreaID != nil {
		if err := e.Guard.EnsureArea(*input.AreaID); err != nil {
			return nil, err
		}
		task.AreaID = *input.AreaID
	}
	if input.EmployeeID != nil {
		if err := e.Guard.EnsureEmployeeActive(*input.EmployeeID); err != nil {
			return nil, err
		}
		task.EmployeeID = input.EmployeeID
	}
	if input.Status != nil {
		if !Models.IsValidTaskStatus(*input.Status) {
			return nil, guardViolation("unknown task status %q", *input.Status)
		}
		task.Status = *input.Status
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ScheduledDate != nil {
		task.ScheduledDate = startOfDay(*input.ScheduledDate)
	}

	if err := e.DB.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func missingPhotoKinds(beforeCount, afterCount int64) string {
	switch {
	case beforeCount == 0 && afterCount == 0:
		return "BEFORE and AFTER"
	case beforeCount == 0:
		return "BEFORE"
	default:
		return "AFTER"
	}
}
