package models

import "gorm.io/gorm"

// StatusChange is one entry in a complaint's audit trail.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt;
// CreatedAt is the timestamp of the change. Entries are append-only: once
// written, only the Note may be amended (by an administrator).
type StatusChange struct {
	gorm.Model

	// ComplaintID is the complaint this entry belongs to.
	ComplaintID string `gorm:"type:text;not null;index:idx_complaint_history" json:"complaintId"`
	// Status is the status the complaint entered with this change.
	Status Status `gorm:"type:text;not null" json:"status"`
	// ChangedBy is the subject who triggered the change.
	ChangedBy string `gorm:"type:text;not null" json:"changedBy"`
	// Note is free text attached by the actor (e.g. "created", "assigned").
	Note string `gorm:"type:text" json:"note"`
}
