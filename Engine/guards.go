package Engine

import (
	"errors"

	"gorm.io/gorm"

	"Sanitrack/Models"
)

// AssignmentGuard validates task assignment references. It holds no state of
// its own; both checks are read-only lookups.
type AssignmentGuard struct {
	DB *gorm.DB
}

// EnsureArea fails if no area with the given id exists.
func (g *AssignmentGuard) EnsureArea(areaID uint) error {
	var area Models.Area
	if err := g.DB.First(&area, areaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return guardViolation("area %d does not exist", areaID)
		}
		return err
	}
	return nil
}

// EnsureEmployeeActive fails unless the referenced employee exists and has
// status ACTIVE. INACTIVE and ON_LEAVE employees cannot take new assignments.
func (g *AssignmentGuard) EnsureEmployeeActive(employeeID uint) error {
	var employee Models.Employee
	if err := g.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return guardViolation("employee %d does not exist", employeeID)
		}
		return err
	}
	if employee.Status != Models.EmployeeStatusActive {
		return guardViolation("employee %d is not ACTIVE (status: %s)", employeeID, employee.Status)
	}
	return nil
}
