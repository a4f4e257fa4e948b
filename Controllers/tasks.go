package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sanitrack/Engine"
	"Sanitrack/Models"
)

var validate = validator.New()

// TaskController handles task lifecycle API endpoints. Transitions go through
// the engine; reads go straight to the database.
type TaskController struct {
	DB     *gorm.DB
	Engine *Engine.TaskEngine
}

// NewTaskController creates a new TaskController
func NewTaskController(db *gorm.DB, engine *Engine.TaskEngine) *TaskController {
	return &TaskController{DB: db, Engine: engine}
}

// engineError maps engine failures to HTTP responses. Guard reasons are shown
// to the user as-is.
func engineError(ctx *fiber.Ctx, err error) error {
	switch {
	case Engine.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case Engine.IsGuardViolation(err):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func actorID(ctx *fiber.Ctx) uint {
	if user, ok := ctx.Locals("user").(Models.User); ok {
		return user.Id
	}
	return 0
}

func parseID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.Atoi(ctx.Params(name))
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %d", id)
	}
	return uint(id), nil
}

type CreateTaskRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	AreaID        uint   `json:"area_id" validate:"required"`
	EmployeeID    *uint  `json:"employee_id"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
}

type UpdateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	AreaID        *uint   `json:"area_id"`
	EmployeeID    *uint   `json:"employee_id"`
	ScheduledDate *string `json:"scheduled_date"`
	Status        *string `json:"status"`
}

type RejectTaskRequest struct {
	Comment string `json:"comment" validate:"required"`
	Reason  string `json:"reason"`
}

// GetTasks lists tasks, newest scheduled first. Supports optional status,
// employee_id and area_id filters for the app views.
func (c *TaskController) GetTasks(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Task{}).Preload("Photos")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if employeeID := ctx.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if areaID := ctx.Query("area_id"); areaID != "" {
		query = query.Where("area_id = ?", areaID)
	}

	var tasks []Models.Task
	if result := query.Order("scheduled_date DESC").Find(&tasks); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}

// GetTask retrieves a single task with its photo ledger
func (c *TaskController) GetTask(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if result := c.DB.Preload("Photos").First(&task, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	return ctx.JSON(task)
}

// CreateTask creates a new PENDING task
func (c *TaskController) CreateTask(ctx *fiber.Ctx) error {
	var input CreateTaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	scheduled, err := time.Parse("2006-01-02", input.ScheduledDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid scheduled_date format. Use YYYY-MM-DD"})
	}

	task, err := c.Engine.CreateTask(Engine.CreateTaskInput{
		Title:         input.Title,
		Description:   input.Description,
		AreaID:        input.AreaID,
		EmployeeID:    input.EmployeeID,
		ScheduledDate: scheduled,
	})
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask applies a partial edit to a task
func (c *TaskController) UpdateTask(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var input UpdateTaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	patch := Engine.UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		AreaID:      input.AreaID,
		EmployeeID:  input.EmployeeID,
		Status:      input.Status,
	}
	if input.ScheduledDate != nil {
		scheduled, err := time.Parse("2006-01-02", *input.ScheduledDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid scheduled_date format. Use YYYY-MM-DD"})
		}
		patch.ScheduledDate = &scheduled
	}

	task, err := c.Engine.UpdateTask(id, patch)
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.JSON(task)
}

// DeleteTask deletes a task and its photos. DONE tasks are refused.
func (c *TaskController) DeleteTask(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	if err := c.Engine.RemoveTask(id); err != nil {
		return engineError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// StartTask marks a task as in progress
func (c *TaskController) StartTask(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := c.Engine.StartTask(id)
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.JSON(task)
}

// RequestReview submits a task for supervisor validation
func (c *TaskController) RequestReview(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := c.Engine.RequestReview(id, actorID(ctx))
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.JSON(task)
}

// ApproveTask closes out a reviewed task
func (c *TaskController) ApproveTask(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	task, err := c.Engine.Approve(id, actorID(ctx))
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.JSON(task)
}

// RejectTask sends a reviewed task back to the worker with a comment
func (c *TaskController) RejectTask(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var input RejectTaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A rejection comment is required"})
	}

	task, err := c.Engine.Reject(id, actorID(ctx), input.Comment, input.Reason)
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.JSON(task)
}
