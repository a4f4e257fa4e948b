package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded for task transitions.
const (
	AuditActionRequestReview = "REQUEST_REVIEW"
	AuditActionApprove       = "APPROVE"
	AuditActionReject        = "REJECT"
)

// AuditLog is one compliance trail entry: who did what to which entity.
type AuditLog struct {
	gorm.Model
	ActorID    uint           `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uint           `json:"entity_id" gorm:"index"`
	Payload    datatypes.JSON `json:"payload"`
}
