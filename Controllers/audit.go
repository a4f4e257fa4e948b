package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sanitrack/Models"
)

// AuditController exposes the compliance trail to supervisors
type AuditController struct {
	DB *gorm.DB
}

// NewAuditController creates a new AuditController
func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// GetTaskAudit lists the audit entries recorded for one task, newest first
func (c *AuditController) GetTaskAudit(ctx *fiber.Ctx) error {
	taskID, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var entries []Models.AuditLog
	result := c.DB.
		Where("entity_type = ? AND entity_id = ?", "Task", taskID).
		Order("created_at DESC").
		Find(&entries)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve audit trail"})
	}
	return ctx.JSON(entries)
}
