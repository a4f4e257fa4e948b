package Models

import "gorm.io/gorm"

// Material is a cleaning supply tracked for inventory purposes only.
type Material struct {
	gorm.Model
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}
