package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Sanitrack/Models"
)

// ReportController exports task reports for supervisors
type ReportController struct {
	DB *gorm.DB
}

// NewReportController creates a new ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// TasksReport exports the tasks scheduled inside a date window as an Excel
// sheet. Defaults to the current month when no window is given.
func (c *ReportController) TasksReport(ctx *fiber.Ctx) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if fromStr := ctx.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from date. Use YYYY-MM-DD"})
		}
		from = parsed
	}
	if toStr := ctx.Query("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to date. Use YYYY-MM-DD"})
		}
		// Window is inclusive of the last day.
		to = parsed.AddDate(0, 0, 1)
	}

	var tasks []Models.Task
	result := c.DB.
		Where("scheduled_date >= ? AND scheduled_date < ?", from, to).
		Order("scheduled_date ASC").
		Find(&tasks)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}

	areaNames := map[uint]string{}
	var areas []Models.Area
	c.DB.Find(&areas)
	for _, area := range areas {
		areaNames[area.ID] = area.Name
	}

	employeeNames := map[uint]string{}
	var employees []Models.Employee
	c.DB.Find(&employees)
	for _, employee := range employees {
		employeeNames[employee.ID] = employee.Name
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Tasks"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Title", "Area", "Employee", "Scheduled Date", "Status", "Rejected Comment"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, task := range tasks {
		employee := ""
		if task.EmployeeID != nil {
			employee = employeeNames[*task.EmployeeID]
		}
		values := []interface{}{
			task.ID,
			task.Title,
			areaNames[task.AreaID],
			employee,
			task.ScheduledDate.Format("2006-01-02"),
			task.Status,
			task.RejectedComment,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	filename := fmt.Sprintf("tasks_%s_%s.xlsx", from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(buffer.Bytes())
}
