package Models

import "gorm.io/gorm"

type Area struct {
	gorm.Model
	Name        string `json:"name"`
	Building    string `json:"building"`
	Floor       string `json:"floor"`
	Description string `json:"description"`
}
