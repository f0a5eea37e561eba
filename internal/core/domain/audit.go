package domain

import "time"

// AuditAction tags what a user did.
type AuditAction string

const (
	AuditCreate    AuditAction = "create"
	AuditUpdate    AuditAction = "update"
	AuditDelete    AuditAction = "delete"
	AuditView      AuditAction = "view"
	AuditLogin     AuditAction = "login"
	AuditLogout    AuditAction = "logout"
	AuditCalculate AuditAction = "calculate"
	AuditExport    AuditAction = "export"
)

// AuditLog is one recorded user action.
type AuditLog struct {
	UserID     string            `json:"user_id" bson:"user_id"`
	Action     AuditAction       `json:"action" bson:"action"`
	EntityType string            `json:"entity_type" bson:"entity_type"`
	EntityID   string            `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IPAddress  string            `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	Timestamp  time.Time         `json:"timestamp" bson:"timestamp"`
}
