package Engine

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Sanitrack/Models"
)

// GormAuditRecorder persists audit events as AuditLog rows.
type GormAuditRecorder struct {
	DB *gorm.DB
}

func (r *GormAuditRecorder) Record(actorID uint, action, entityType string, entityID uint, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	entry := Models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    datatypes.JSON(data),
	}
	return r.DB.Create(&entry).Error
}
