package Engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Sanitrack/Models"
)

// testToday is the pinned "now" for every engine test: 2025-06-15.
var testToday = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *TaskEngine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&Models.User{}, &Models.Area{}, &Models.Employee{},
		&Models.Task{}, &Models.TaskPhoto{}, &Models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	engine := NewTaskEngine(db, &GormAuditRecorder{DB: db})
	engine.Now = func() time.Time { return testToday }
	return engine
}

func seedArea(t *testing.T, e *TaskEngine) Models.Area {
	t.Helper()
	area := Models.Area{Name: "Lobby", Building: "HQ"}
	if err := e.DB.Create(&area).Error; err != nil {
		t.Fatalf("seed area: %v", err)
	}
	return area
}

func seedEmployee(t *testing.T, e *TaskEngine, status string) Models.Employee {
	t.Helper()
	employee := Models.Employee{Name: "Dana", Status: status}
	if err := e.DB.Create(&employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return employee
}

func seedTask(t *testing.T, e *TaskEngine, status string, scheduled time.Time) Models.Task {
	t.Helper()
	area := seedArea(t, e)
	task := Models.Task{
		Title:         "Deep clean",
		AreaID:        area.ID,
		ScheduledDate: scheduled,
		Status:        status,
	}
	if err := e.DB.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func addPhoto(t *testing.T, e *TaskEngine, taskID uint, photoType string) {
	t.Helper()
	if _, err := e.AddPhoto(taskID, photoType, "/TaskPhotos/x.jpg", "x.jpg"); err != nil {
		t.Fatalf("add %s photo: %v", photoType, err)
	}
}

func TestCreateTaskSchedulingGuard(t *testing.T) {
	e := newTestEngine(t)
	area := seedArea(t, e)

	_, err := e.CreateTask(CreateTaskInput{
		Title:         "Yesterday's task",
		AreaID:        area.ID,
		ScheduledDate: testToday.AddDate(0, 0, -1),
	})
	if !IsGuardViolation(err) {
		t.Fatalf("expected guard violation for past date, got %v", err)
	}

	task, err := e.CreateTask(CreateTaskInput{
		Title:         "Today's task",
		AreaID:        area.ID,
		ScheduledDate: testToday,
	})
	if err != nil {
		t.Fatalf("create for today: %v", err)
	}
	if task.Status != Models.TaskStatusPending {
		t.Errorf("new task status = %s, want PENDING", task.Status)
	}

	if _, err := e.CreateTask(CreateTaskInput{
		Title:         "Tomorrow's task",
		AreaID:        area.ID,
		ScheduledDate: testToday.AddDate(0, 0, 1),
	}); err != nil {
		t.Fatalf("create for tomorrow: %v", err)
	}
}

func TestCreateTaskAreaGuard(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CreateTask(CreateTaskInput{
		Title:         "Orphan",
		AreaID:        999,
		ScheduledDate: testToday,
	})
	if !IsGuardViolation(err) {
		t.Fatalf("expected guard violation for missing area, got %v", err)
	}

	// Guard failure must not leave a row behind.
	var count int64
	e.DB.Model(&Models.Task{}).Count(&count)
	if count != 0 {
		t.Errorf("task count after failed create = %d, want 0", count)
	}
}

func TestCreateTaskEmployeeGuard(t *testing.T) {
	e := newTestEngine(t)
	area := seedArea(t, e)

	for _, status := range []string{Models.EmployeeStatusInactive, Models.EmployeeStatusOnLeave} {
		employee := seedEmployee(t, e, status)
		_, err := e.CreateTask(CreateTaskInput{
			Title:         "Assigned",
			AreaID:        area.ID,
			EmployeeID:    &employee.ID,
			ScheduledDate: testToday,
		})
		if !IsGuardViolation(err) {
			t.Fatalf("expected guard violation for %s employee, got %v", status, err)
		}
		if !strings.Contains(err.Error(), "ACTIVE") {
			t.Errorf("guard message %q should name ACTIVE", err.Error())
		}
	}

	active := seedEmployee(t, e, Models.EmployeeStatusActive)
	task, err := e.CreateTask(CreateTaskInput{
		Title:         "Assigned",
		AreaID:        area.ID,
		EmployeeID:    &active.ID,
		ScheduledDate: testToday,
	})
	if err != nil {
		t.Fatalf("create with ACTIVE employee: %v", err)
	}
	if task.EmployeeID == nil || *task.EmployeeID != active.ID {
		t.Errorf("task employee = %v, want %d", task.EmployeeID, active.ID)
	}
}

func TestStartTask(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusPending, testToday)

	started, err := e.StartTask(task.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != Models.TaskStatusInProgress {
		t.Errorf("status after start = %s, want IN_PROGRESS", started.Status)
	}

	if _, err := e.StartTask(999); !IsNotFound(err) {
		t.Errorf("start of missing task: expected not found, got %v", err)
	}
}

func TestAddPhotoValidation(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusPending, testToday)

	if _, err := e.AddPhoto(task.ID, "SIDEWAYS", "/x.jpg", "x.jpg"); !IsGuardViolation(err) {
		t.Errorf("expected guard violation for unknown photo type, got %v", err)
	}
	if _, err := e.AddPhoto(999, Models.PhotoTypeBefore, "/x.jpg", "x.jpg"); !IsNotFound(err) {
		t.Errorf("expected not found for missing task, got %v", err)
	}
	if _, err := e.AddPhoto(task.ID, Models.PhotoTypeBefore, "/x.jpg", "x.jpg"); err != nil {
		t.Errorf("add photo: %v", err)
	}
}

func TestRequestReviewRequiresBothPhotoKinds(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusInProgress, testToday)

	_, err := e.RequestReview(task.ID, 1)
	if !IsGuardViolation(err) {
		t.Fatalf("expected guard violation with no photos, got %v", err)
	}
	if !strings.Contains(err.Error(), "BEFORE and AFTER") {
		t.Errorf("guard message %q should name both missing kinds", err.Error())
	}

	addPhoto(t, e, task.ID, Models.PhotoTypeBefore)
	_, err = e.RequestReview(task.ID, 1)
	if !IsGuardViolation(err) || !strings.Contains(err.Error(), "AFTER") {
		t.Fatalf("expected guard violation naming AFTER, got %v", err)
	}

	addPhoto(t, e, task.ID, Models.PhotoTypeAfter)
	reviewed, err := e.RequestReview(task.ID, 1)
	if err != nil {
		t.Fatalf("request review with both photos: %v", err)
	}
	if reviewed.Status != Models.TaskStatusInReview {
		t.Errorf("status = %s, want IN_REVIEW", reviewed.Status)
	}
}

func TestRequestReviewWrongStatusMessageIsDistinct(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusDone, testToday)
	addPhoto(t, e, task.ID, Models.PhotoTypeBefore)
	addPhoto(t, e, task.ID, Models.PhotoTypeAfter)

	_, err := e.RequestReview(task.ID, 1)
	if !IsGuardViolation(err) {
		t.Fatalf("expected guard violation, got %v", err)
	}
	if strings.Contains(err.Error(), "photo") {
		t.Errorf("wrong-status failure %q should not read as a photo failure", err.Error())
	}
}

func TestApproveOnlyFromInReview(t *testing.T) {
	e := newTestEngine(t)

	for _, status := range []string{
		Models.TaskStatusPending, Models.TaskStatusInProgress,
		Models.TaskStatusDone, Models.TaskStatusLate,
	} {
		task := seedTask(t, e, status, testToday)
		if _, err := e.Approve(task.ID, 1); !IsGuardViolation(err) {
			t.Errorf("approve from %s: expected guard violation, got %v", status, err)
		}
		if _, err := e.Reject(task.ID, 1, "not clean", ""); !IsGuardViolation(err) {
			t.Errorf("reject from %s: expected guard violation, got %v", status, err)
		}
	}
}

func TestApproveSucceedsExactlyOnce(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusInReview, testToday)

	approved, err := e.Approve(task.ID, 7)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != Models.TaskStatusDone {
		t.Errorf("status = %s, want DONE", approved.Status)
	}

	if _, err := e.Approve(task.ID, 7); !IsGuardViolation(err) {
		t.Errorf("second approve: expected guard violation, got %v", err)
	}

	var entries []Models.AuditLog
	e.DB.Where("action = ?", Models.AuditActionApprove).Find(&entries)
	if len(entries) != 1 {
		t.Fatalf("audit entries for APPROVE = %d, want 1", len(entries))
	}
	if entries[0].ActorID != 7 || entries[0].EntityID != task.ID {
		t.Errorf("audit entry actor/entity = %d/%d, want 7/%d", entries[0].ActorID, entries[0].EntityID, task.ID)
	}
}

func TestRejectStampsMetadataAndReturnsToInProgress(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusInReview, testToday)

	if _, err := e.Reject(task.ID, 7, "", ""); !IsGuardViolation(err) {
		t.Fatalf("reject without comment: expected guard violation, got %v", err)
	}

	rejected, err := e.Reject(task.ID, 7, "missing corner", "")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != Models.TaskStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", rejected.Status)
	}
	if rejected.RejectedComment != "missing corner" {
		t.Errorf("rejected comment = %q, want %q", rejected.RejectedComment, "missing corner")
	}
	if rejected.RejectedByID == nil || *rejected.RejectedByID != 7 {
		t.Errorf("rejected by = %v, want 7", rejected.RejectedByID)
	}
	if rejected.RejectedAt == nil || !rejected.RejectedAt.Equal(testToday) {
		t.Errorf("rejected at = %v, want %v", rejected.RejectedAt, testToday)
	}

	// Still IN_PROGRESS, so a second reject has to fail.
	if _, err := e.Reject(task.ID, 7, "again", ""); !IsGuardViolation(err) {
		t.Errorf("second reject: expected guard violation, got %v", err)
	}
}

func TestRemoveTaskRefusesDoneAndCascadesPhotos(t *testing.T) {
	e := newTestEngine(t)

	done := seedTask(t, e, Models.TaskStatusDone, testToday)
	if err := e.RemoveTask(done.ID); !IsGuardViolation(err) {
		t.Fatalf("remove DONE task: expected guard violation, got %v", err)
	}

	for _, status := range []string{
		Models.TaskStatusPending, Models.TaskStatusInProgress,
		Models.TaskStatusInReview, Models.TaskStatusLate,
	} {
		task := seedTask(t, e, status, testToday)
		addPhoto(t, e, task.ID, Models.PhotoTypeBefore)
		addPhoto(t, e, task.ID, Models.PhotoTypeAfter)

		if err := e.RemoveTask(task.ID); err != nil {
			t.Fatalf("remove %s task: %v", status, err)
		}

		var found Models.Task
		if err := e.DB.First(&found, task.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("task %d still readable after delete", task.ID)
		}
		var photoCount int64
		e.DB.Model(&Models.TaskPhoto{}).Where("task_id = ?", task.ID).Count(&photoCount)
		if photoCount != 0 {
			t.Errorf("photos left for task %d = %d, want 0", task.ID, photoCount)
		}
	}
}

func TestUpdateTask(t *testing.T) {
	e := newTestEngine(t)
	task := seedTask(t, e, Models.TaskStatusPending, testToday)

	title := "Night shift clean"
	badStatus := "SPARKLING"
	if _, err := e.UpdateTask(task.ID, UpdateTaskInput{Status: &badStatus}); !IsGuardViolation(err) {
		t.Fatalf("unknown status: expected guard violation, got %v", err)
	}

	// Direct status edits skip the review guard on purpose.
	review := Models.TaskStatusInReview
	updated, err := e.UpdateTask(task.ID, UpdateTaskInput{Title: &title, Status: &review})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || updated.Status != review {
		t.Errorf("updated = %q/%s, want %q/%s", updated.Title, updated.Status, title, review)
	}

	inactive := seedEmployee(t, e, Models.EmployeeStatusInactive)
	if _, err := e.UpdateTask(task.ID, UpdateTaskInput{EmployeeID: &inactive.ID}); !IsGuardViolation(err) {
		t.Errorf("assigning INACTIVE employee: expected guard violation, got %v", err)
	}

	done := seedTask(t, e, Models.TaskStatusDone, testToday)
	if _, err := e.UpdateTask(done.ID, UpdateTaskInput{Title: &title}); !IsGuardViolation(err) {
		t.Errorf("editing DONE task: expected guard violation, got %v", err)
	}

	if _, err := e.UpdateTask(999, UpdateTaskInput{Title: &title}); !IsNotFound(err) {
		t.Errorf("updating missing task: expected not found, got %v", err)
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(uint, string, string, uint, map[string]interface{}) error {
	return errors.New("audit sink down")
}

func TestAuditFailureDoesNotBlockTransition(t *testing.T) {
	e := newTestEngine(t)
	e.Audit = failingRecorder{}
	task := seedTask(t, e, Models.TaskStatusInReview, testToday)

	approved, err := e.Approve(task.ID, 1)
	if err != nil {
		t.Fatalf("approve with failing audit sink: %v", err)
	}
	if approved.Status != Models.TaskStatusDone {
		t.Errorf("status = %s, want DONE", approved.Status)
	}
}
