package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // needed for pq.StringArray
	"gorm.io/gorm"
)

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusResolved   Status = "Resolved"
	StatusRejected   Status = "Rejected"
)

// AllStatuses lists every valid status, in lifecycle order.
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Priority is the urgency assigned to a complaint.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Category is the kind of civic issue a complaint is about. The set is closed.
type Category string

const (
	CategoryRoads           Category = "Roads"
	CategoryWater           Category = "Water"
	CategoryElectricity     Category = "Electricity"
	CategorySanitation      Category = "Sanitation"
	CategoryStreetlight     Category = "Streetlight"
	CategoryPublicTransport Category = "PublicTransport"
	CategoryOther           Category = "Other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRoads, CategoryWater, CategoryElectricity, CategorySanitation,
		CategoryStreetlight, CategoryPublicTransport, CategoryOther:
		return true
	}
	return false
}

// Complaint is a citizen-filed report about a civic issue.
// Likes is a set of subject IDs stored as a PostgreSQL text array;
// a subject appears at most once.
type Complaint struct {
	ID          string         `gorm:"primaryKey" json:"id"` // UUID
	OwnerID     string         `gorm:"type:text;not null;index" json:"ownerId"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    Category       `gorm:"type:text;not null" json:"category"`
	Priority    Priority       `gorm:"type:text;not null" json:"priority"`
	Location    string         `gorm:"type:text;not null" json:"location"`
	Status      Status         `gorm:"type:text;not null;index" json:"status"`
	Likes       pq.StringArray `gorm:"type:text[]" json:"likes"`
	AssigneeID  *string        `gorm:"type:text" json:"assigneeId"`

	// History is the append-only audit trail; the first entry records the
	// initial Pending status and the last entry always matches Status.
	History []StatusChange `gorm:"foreignKey:ComplaintID;references:ID" json:"history,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that fills in the generated ID and the
// defaults a freshly filed complaint must have.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return
}

// LikeCount returns the size of the likes set.
func (c *Complaint) LikeCount() int {
	return len(c.Likes)
}

// LikedBy reports whether subjectID is in the likes set.
func (c *Complaint) LikedBy(subjectID string) bool {
	for _, id := range c.Likes {
		if id == subjectID {
			return true
		}
	}
	return false
}
