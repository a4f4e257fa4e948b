package Models

import "gorm.io/gorm"

const (
	EmployeeStatusActive   = "ACTIVE"
	EmployeeStatusInactive = "INACTIVE"
	EmployeeStatusOnLeave  = "ON_LEAVE"
)

// IsValidEmployeeStatus reports whether s is a known employee status.
func IsValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

type Employee struct {
	gorm.Model
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status" gorm:"default:'ACTIVE'"`
}
