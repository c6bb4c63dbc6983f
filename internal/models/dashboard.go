package models

import "time"

// Dashboard is the denormalized per-owner summary of complaint states.
// It mirrors the live distribution of the owner's complaints and is kept
// up to date by counter deltas, with recompute as the repair path. Treat it
// as a cache of the true counts, never as the source of truth.
type Dashboard struct {
	// OwnerID is the subject whose complaints are summarized.
	OwnerID string `gorm:"primaryKey;type:text" json:"ownerId"`

	Total      int `gorm:"not null;default:0" json:"total"`
	Pending    int `gorm:"not null;default:0" json:"pending"`
	InProgress int `gorm:"not null;default:0" json:"inProgress"`
	Resolved   int `gorm:"not null;default:0" json:"resolved"`
	Rejected   int `gorm:"not null;default:0" json:"rejected"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Sum returns the total implied by the per-status counters.
func (d *Dashboard) Sum() int {
	return d.Pending + d.InProgress + d.Resolved + d.Rejected
}

// Consistent reports whether Total agrees with the per-status counters.
// A false result signals drift and should trigger a recompute.
func (d *Dashboard) Consistent() bool {
	return d.Total == d.Sum()
}

// DashboardDelta is a single counter adjustment for one owner's dashboard.
// Negative values decrement, clamped at zero when applied.
type DashboardDelta struct {
	Total      int
	Pending    int
	InProgress int
	Resolved   int
	Rejected   int
}

// Add accumulates n onto the counter matching status.
func (d *DashboardDelta) Add(status Status, n int) {
	switch status {
	case StatusPending:
		d.Pending += n
	case StatusInProgress:
		d.InProgress += n
	case StatusResolved:
		d.Resolved += n
	case StatusRejected:
		d.Rejected += n
	}
}
