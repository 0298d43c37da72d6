package domain

import "time"

// AuditFields holds the timestamps shared by persisted entities.
// DeletedAt is set on soft removal; rows are never hard-deleted.
type AuditFields struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
