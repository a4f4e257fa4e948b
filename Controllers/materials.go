package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sanitrack/Models"
)

// MaterialController handles cleaning supply inventory endpoints
type MaterialController struct {
	DB *gorm.DB
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(db *gorm.DB) *MaterialController {
	return &MaterialController{DB: db}
}

// GetMaterials retrieves all materials
func (c *MaterialController) GetMaterials(ctx *fiber.Ctx) error {
	var materials []Models.Material
	if result := c.DB.Find(&materials); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve materials"})
	}
	return ctx.JSON(materials)
}

// GetMaterial retrieves a single material by ID
func (c *MaterialController) GetMaterial(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	var material Models.Material
	if result := c.DB.First(&material, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}
	return ctx.JSON(material)
}

// CreateMaterial creates a new material
func (c *MaterialController) CreateMaterial(ctx *fiber.Ctx) error {
	var input Models.Material
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Material name is required"})
	}

	material := Models.Material{
		Name:     input.Name,
		Unit:     input.Unit,
		Quantity: input.Quantity,
		Notes:    input.Notes,
	}
	if result := c.DB.Create(&material); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create material"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(material)
}

// UpdateMaterial updates an existing material
func (c *MaterialController) UpdateMaterial(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	var material Models.Material
	if result := c.DB.First(&material, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	var input Models.Material
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Model(&material).Updates(map[string]interface{}{
		"name":     input.Name,
		"unit":     input.Unit,
		"quantity": input.Quantity,
		"notes":    input.Notes,
	})
	return ctx.JSON(material)
}

// DeleteMaterial deletes a material
func (c *MaterialController) DeleteMaterial(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	var material Models.Material
	if result := c.DB.First(&material, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	c.DB.Delete(&material)
	return ctx.JSON(fiber.Map{"message": "Material deleted successfully"})
}
