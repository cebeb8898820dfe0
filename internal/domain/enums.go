package domain

// SlotStatus represents the administrative state of a storage compartment.
type SlotStatus string

const (
	SlotStatusActive    SlotStatus = "ACTIVE"
	SlotStatusSuspended SlotStatus = "SUSPENDED"
	SlotStatusReported  SlotStatus = "REPORTED"
	SlotStatusRetired   SlotStatus = "RETIRED"
)

func (s SlotStatus) String() string { return string(s) }

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusActive, SlotStatusSuspended, SlotStatusReported, SlotStatusRetired:
		return true
	}
	return false
}

// SessionStatus represents the lifecycle state of an inspection session.
// SUBMITTED and CANCELED are terminal. "Not started" is not a persisted state;
// it is the absence of an IN_PROGRESS row for a compartment.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusSubmitted  SessionStatus = "SUBMITTED"
	SessionStatusCanceled   SessionStatus = "CANCELED"
)

func (s SessionStatus) String() string { return string(s) }

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusInProgress, SessionStatusSubmitted, SessionStatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusSubmitted || s == SessionStatusCanceled
}

// ActionType classifies an inspector's recorded disposition.
type ActionType string

const (
	ActionTypePass                ActionType = "PASS"
	ActionTypeDisposeExpired      ActionType = "DISPOSE_EXPIRED"
	ActionTypeUnregisteredDispose ActionType = "UNREGISTERED_DISPOSE"
	ActionTypeWarnStoragePoor     ActionType = "WARN_STORAGE_POOR"
	ActionTypeWarnInfoMismatch    ActionType = "WARN_INFO_MISMATCH"
)

func (a ActionType) String() string { return string(a) }

func (a ActionType) IsValid() bool {
	switch a {
	case ActionTypePass, ActionTypeDisposeExpired, ActionTypeUnregisteredDispose,
		ActionTypeWarnStoragePoor, ActionTypeWarnInfoMismatch:
		return true
	}
	return false
}

// Disposal reports whether the action removes the item from inventory on submit.
func (a ActionType) Disposal() bool {
	return a == ActionTypeDisposeExpired || a == ActionTypeUnregisteredDispose
}

// ScheduleStatus represents the state of a planned inspection.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "SCHEDULED"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusCanceled  ScheduleStatus = "CANCELED"
)

func (s ScheduleStatus) String() string { return string(s) }

func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleStatusScheduled, ScheduleStatusCompleted, ScheduleStatusCanceled:
		return true
	}
	return false
}

// Role gates inspection and schedule operations.
type Role string

const (
	RoleResident     Role = "RESIDENT"
	RoleFloorManager Role = "FLOOR_MANAGER"
	RoleAdmin        Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleResident, RoleFloorManager, RoleAdmin:
		return true
	}
	return false
}

// Freshness is derived from a unit's expiry date, never stored canonically.
type Freshness string

const (
	FreshnessOK       Freshness = "OK"
	FreshnessExpiring Freshness = "EXPIRING"
	FreshnessExpired  Freshness = "EXPIRED"
)

func (f Freshness) String() string { return string(f) }

// AuditEntityType identifies the kind of entity named in an audit event.
type AuditEntityType string

const (
	AuditEntitySlot     AuditEntityType = "SLOT"
	AuditEntityBundle   AuditEntityType = "BUNDLE"
	AuditEntityUnit     AuditEntityType = "UNIT"
	AuditEntitySession  AuditEntityType = "SESSION"
	AuditEntitySchedule AuditEntityType = "SCHEDULE"
	AuditEntityPenalty  AuditEntityType = "PENALTY"
)

func (e AuditEntityType) String() string { return string(e) }

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }
