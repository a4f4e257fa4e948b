package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sanitrack/Models"
)

// AreaController handles area-related API endpoints
type AreaController struct {
	DB *gorm.DB
}

// NewAreaController creates a new AreaController
func NewAreaController(db *gorm.DB) *AreaController {
	return &AreaController{DB: db}
}

// GetAreas retrieves all areas
func (c *AreaController) GetAreas(ctx *fiber.Ctx) error {
	var areas []Models.Area
	if result := c.DB.Find(&areas); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve areas"})
	}
	return ctx.JSON(areas)
}

// GetArea retrieves a single area by ID
func (c *AreaController) GetArea(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid area ID"})
	}

	var area Models.Area
	if result := c.DB.First(&area, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Area not found"})
	}
	return ctx.JSON(area)
}

// CreateArea creates a new area
func (c *AreaController) CreateArea(ctx *fiber.Ctx) error {
	var input Models.Area
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Area name is required"})
	}

	area := Models.Area{
		Name:        input.Name,
		Building:    input.Building,
		Floor:       input.Floor,
		Description: input.Description,
	}
	if result := c.DB.Create(&area); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create area"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(area)
}

// UpdateArea updates an existing area
func (c *AreaController) UpdateArea(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid area ID"})
	}

	var area Models.Area
	if result := c.DB.First(&area, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Area not found"})
	}

	var input Models.Area
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Model(&area).Updates(Models.Area{
		Name:        input.Name,
		Building:    input.Building,
		Floor:       input.Floor,
		Description: input.Description,
	})
	return ctx.JSON(area)
}

// DeleteArea deletes an area
func (c *AreaController) DeleteArea(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid area ID"})
	}

	var area Models.Area
	if result := c.DB.First(&area, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Area not found"})
	}

	var taskCount int64
	c.DB.Model(&Models.Task{}).Where("area_id = ?", id).Count(&taskCount)
	if taskCount > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Area still has tasks assigned to it"})
	}

	c.DB.Delete(&area)
	return ctx.JSON(fiber.Map{"message": "Area deleted successfully"})
}
