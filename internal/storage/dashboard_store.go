package storage

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"fixitfast/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dashboardCacheTTL bounds how long a cached dashboard may be served; every
// counter delta invalidates the key anyway, so the TTL only matters after a
// missed invalidation.
const dashboardCacheTTL = 5 * time.Minute

func dashboardKey(ownerID string) string {
	return "dashboard:" + ownerID
}

// GetDashboard returns the stored dashboard row for the owner, or nil if the
// owner has never had one.
func (s *Service) GetDashboard(ownerID string) (*models.Dashboard, error) {
	var d models.Dashboard
	err := s.DB.First(&d, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDashboard replaces the owner's dashboard with the given snapshot,
// creating the row if absent (last writer wins).
func (s *Service) SaveDashboard(d *models.Dashboard) error {
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		UpdateAll: true,
	}).Create(d).Error; err != nil {
		log.Printf("ERROR: Failed to save dashboard for owner %s: %v", d.OwnerID, err)
		return err
	}
	return nil
}

// ApplyDashboardDelta applies one counter adjustment to the owner's
// dashboard, lazily creating the row on first use. Each counter is updated
// in place inside the database (never read-modify-write of a fetched copy),
// and decrements are clamped at zero to tolerate replay or drift.
func (s *Service) ApplyDashboardDelta(ownerID string, delta models.DashboardDelta) error {
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoNothing: true,
	}).Create(&models.Dashboard{OwnerID: ownerID}).Error; err != nil {
		log.Printf("ERROR: Failed to ensure dashboard for owner %s: %v", ownerID, err)
		return err
	}

	updates := map[string]interface{}{}
	apply := func(col string, n int) {
		if n > 0 {
			updates[col] = gorm.Expr(col+" + ?", n)
		} else if n < 0 {
			updates[col] = gorm.Expr("GREATEST("+col+" - ?, 0)", -n)
		}
	}
	apply("total", delta.Total)
	apply("pending", delta.Pending)
	apply("in_progress", delta.InProgress)
	apply("resolved", delta.Resolved)
	apply("rejected", delta.Rejected)
	if len(updates) == 0 {
		return nil
	}

	if err := s.DB.Model(&models.Dashboard{}).
		Where("owner_id = ?", ownerID).
		Updates(updates).Error; err != nil {
		log.Printf("ERROR: Failed to apply dashboard delta for owner %s: %v", ownerID, err)
		return err
	}
	return nil
}

// CountComplaintsByStatus derives the true per-status counts from the live
// complaint rows. This is the authoritative source recompute snapshots from.
func (s *Service) CountComplaintsByStatus(ownerID string) (map[models.Status]int64, error) {
	var rows []struct {
		Status models.Status
		Count  int64
	}
	err := s.DB.Model(&models.Complaint{}).
		Select("status, COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to count complaints for owner %s: %v", ownerID, err)
		return nil, err
	}

	counts := make(map[models.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// GetCachedDashboard checks Redis for a cached dashboard (fast path).
// A miss, a nil client, and a decode failure all report (nil, nil).
func (s *Service) GetCachedDashboard(ownerID string) (*models.Dashboard, error) {
	if s.Redis == nil {
		return nil, nil
	}
	raw, err := s.Redis.Get(s.Ctx, dashboardKey(ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d models.Dashboard
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		log.Printf("ERROR: Corrupt dashboard cache entry for owner %s: %v", ownerID, err)
		return nil, nil
	}
	return &d, nil
}

// CacheDashboard stores the dashboard in Redis with a bounded TTL.
func (s *Service) CacheDashboard(d *models.Dashboard) error {
	if s.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, dashboardKey(d.OwnerID), raw, dashboardCacheTTL).Err()
}

// InvalidateDashboard drops the owner's cached dashboard after a counter
// delta or recompute.
func (s *Service) InvalidateDashboard(ownerID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(s.Ctx, dashboardKey(ownerID)).Err()
}
