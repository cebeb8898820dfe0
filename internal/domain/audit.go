package domain

import (
	"github.com/google/uuid"
)

// AuditRecord describes one mutation: who did what to which entity. Every
// state-mutating operation emits one; the sink is best-effort and must never
// fail the operation it describes.
type AuditRecord struct {
	UserID     uuid.UUID
	EntityType AuditEntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
}
