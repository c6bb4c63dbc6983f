// Package dashboard maintains the denormalized per-owner complaint counters.
// The stored aggregate is a cache of the live complaint distribution: the
// lifecycle service feeds it single counter deltas, and Recompute is the
// authoritative repair path whenever a counter is suspected to have drifted.
package dashboard

import (
	"log"

	"fixitfast/backend/internal/models"
	"fixitfast/backend/internal/storage"
)

// Service applies counter deltas and recomputes snapshots.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new dashboard aggregator.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// OnCreate records a newly filed complaint: total and pending go up by one.
func (s *Service) OnCreate(ownerID string) error {
	delta := models.DashboardDelta{Total: 1}
	delta.Add(models.StatusPending, 1)
	return s.apply(ownerID, delta)
}

// OnTransition moves one complaint between status counters; total is
// unchanged.
func (s *Service) OnTransition(ownerID string, from, to models.Status) error {
	var delta models.DashboardDelta
	delta.Add(from, -1)
	delta.Add(to, 1)
	return s.apply(ownerID, delta)
}

// OnDelete records a removed complaint: total and the counter matching the
// status at deletion time go down by one (floored at zero in the store).
func (s *Service) OnDelete(ownerID string, status models.Status) error {
	delta := models.DashboardDelta{Total: -1}
	delta.Add(status, -1)
	return s.apply(ownerID, delta)
}

func (s *Service) apply(ownerID string, delta models.DashboardDelta) error {
	if err := s.Storage.ApplyDashboardDelta(ownerID, delta); err != nil {
		return err
	}
	if err := s.Storage.InvalidateDashboard(ownerID); err != nil {
		log.Printf("ERROR: Failed to invalidate dashboard cache for owner %s: %v", ownerID, err)
	}
	return nil
}

// Recompute replaces the owner's aggregate with counts freshly derived from
// the live complaint rows. Safe to run concurrently with ongoing writes;
// the recomputed snapshot wins.
func (s *Service) Recompute(ownerID string) (*models.Dashboard, error) {
	counts, err := s.Storage.CountComplaintsByStatus(ownerID)
	if err != nil {
		return nil, err
	}

	d := &models.Dashboard{
		OwnerID:    ownerID,
		Pending:    int(counts[models.StatusPending]),
		InProgress: int(counts[models.StatusInProgress]),
		Resolved:   int(counts[models.StatusResolved]),
		Rejected:   int(counts[models.StatusRejected]),
	}
	d.Total = d.Sum()

	if err := s.Storage.SaveDashboard(d); err != nil {
		return nil, err
	}
	if err := s.Storage.InvalidateDashboard(ownerID); err != nil {
		log.Printf("ERROR: Failed to invalidate dashboard cache for owner %s: %v", ownerID, err)
	}
	return d, nil
}

// RecomputeAll repairs the dashboards of every owner that currently has
// complaints.
func (s *Service) RecomputeAll() error {
	owners, err := s.Storage.ListOwnerIDs()
	if err != nil {
		return err
	}
	for _, ownerID := range owners {
		if _, err := s.Recompute(ownerID); err != nil {
			return err
		}
		log.Printf("INFO: Recomputed dashboard for owner %s", ownerID)
	}
	return nil
}

// Get returns the owner's dashboard, preferring the cache. An owner who has
// never filed a complaint gets a zero aggregate. If the stored counters do
// not sum up, the drift is logged and repaired via Recompute before the
// caller ever sees it.
func (s *Service) Get(ownerID string) (*models.Dashboard, error) {
	if cached, err := s.Storage.GetCachedDashboard(ownerID); err == nil && cached != nil {
		return cached, nil
	}

	d, err := s.Storage.GetDashboard(ownerID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		// No complaints filed yet; the row is created lazily on first use.
		return &models.Dashboard{OwnerID: ownerID}, nil
	}

	if !d.Consistent() {
		log.Printf("ERROR: Dashboard drift for owner %s (total=%d, sum=%d), recomputing",
			ownerID, d.Total, d.Sum())
		return s.Recompute(ownerID)
	}

	if err := s.Storage.CacheDashboard(d); err != nil {
		log.Printf("ERROR: Failed to cache dashboard for owner %s: %v", ownerID, err)
	}
	return d, nil
}
