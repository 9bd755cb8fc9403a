package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one access decision on a protected route.
type AuditLog struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	ActorID   string         `gorm:"size:64;index" json:"actor_id"` // empty when auth failed before a principal existed
	Action    string         `gorm:"size:200;not null" json:"action"`
	Decision  string         `gorm:"size:16" json:"decision"` // "allow" or "deny"
	IP        string         `gorm:"size:64" json:"ip"`
	UserAgent string         `gorm:"size:255" json:"user_agent"`
	Details   datatypes.JSON `gorm:"type:json" json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
