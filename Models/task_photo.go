package Models

import "gorm.io/gorm"

const (
	PhotoTypeBefore = "BEFORE"
	PhotoTypeAfter  = "AFTER"
)

// TaskPhoto is one proof-of-work photo attached to a task. URL and StorageKey
// point into the photo store and are opaque to the rest of the system.
type TaskPhoto struct {
	gorm.Model
	TaskID     uint   `json:"task_id" gorm:"index"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	StorageKey string `json:"storage_key"`
}
