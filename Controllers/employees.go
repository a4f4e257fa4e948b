package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sanitrack/Models"
)

// EmployeeController handles employee-related API endpoints
type EmployeeController struct {
	DB *gorm.DB
}

// NewEmployeeController creates a new EmployeeController
func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetEmployees retrieves all employees, optionally filtered by status
func (c *EmployeeController) GetEmployees(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Employee{})
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var employees []Models.Employee
	if result := query.Find(&employees); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve employees"})
	}
	return ctx.JSON(employees)
}

// GetEmployee retrieves a single employee by ID
func (c *EmployeeController) GetEmployee(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if result := c.DB.First(&employee, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	return ctx.JSON(employee)
}

// CreateEmployee creates a new employee
func (c *EmployeeController) CreateEmployee(ctx *fiber.Ctx) error {
	var input Models.Employee
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Employee name is required"})
	}
	if input.Status == "" {
		input.Status = Models.EmployeeStatusActive
	}
	if !Models.IsValidEmployeeStatus(input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be ACTIVE, INACTIVE or ON_LEAVE"})
	}

	employee := Models.Employee{
		Name:   input.Name,
		Phone:  input.Phone,
		Status: input.Status,
	}
	if result := c.DB.Create(&employee); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(employee)
}

// UpdateEmployee updates an existing employee
func (c *EmployeeController) UpdateEmployee(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if result := c.DB.First(&employee, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	var input Models.Employee
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Status != "" && !Models.IsValidEmployeeStatus(input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be ACTIVE, INACTIVE or ON_LEAVE"})
	}

	c.DB.Model(&employee).Updates(Models.Employee{
		Name:   input.Name,
		Phone:  input.Phone,
		Status: input.Status,
	})
	return ctx.JSON(employee)
}

// DeleteEmployee deletes an employee
func (c *EmployeeController) DeleteEmployee(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if result := c.DB.First(&employee, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	c.DB.Delete(&employee)
	return ctx.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
