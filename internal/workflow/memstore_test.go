package workflow_test

import (
	"time"

	"fixitfast/backend/internal/models"
	"fixitfast/backend/internal/storage"
)

// memStore is an in-memory implementation of storage.Storage used for
// end-to-end lifecycle tests, so the real aggregator logic runs against
// deterministic state instead of mock expectations.
type memStore struct {
	users      map[string]*models.User
	complaints map[string]*models.Complaint
	dashboards map[string]*models.Dashboard
	historyID  uint
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]*models.User),
		complaints: make(map[string]*models.Complaint),
		dashboards: make(map[string]*models.Dashboard),
	}
}

func (s *memStore) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	s.users[user.ID] = user
	return nil
}

func (s *memStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetUserByID(id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *memStore) PromoteUser(email string) error {
	u, _ := s.GetUserByEmail(email)
	if u != nil {
		u.Role = models.RoleAdmin
	}
	return nil
}

func (s *memStore) CreateComplaint(c *models.Complaint) error {
	if c.ID == "" {
		c.BeforeCreate(nil)
	}
	now := time.Now()
	c.CreatedAt = now
	for i := range c.History {
		s.historyID++
		c.History[i].ID = s.historyID
		c.History[i].ComplaintID = c.ID
		c.History[i].CreatedAt = now
	}
	s.complaints[c.ID] = c
	return nil
}

func (s *memStore) GetComplaintByID(id string) (*models.Complaint, error) {
	return s.complaints[id], nil
}

func (s *memStore) ListComplaints(f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	var items []models.Complaint
	for _, c := range s.complaints {
		if f.OwnerID != "" && c.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		items = append(items, *c)
	}
	return items, int64(len(items)), nil
}

func (s *memStore) TransitionComplaintStatus(id string, from, to models.Status, entry *models.StatusChange) (int64, error) {
	c, ok := s.complaints[id]
	if !ok || c.Status != from {
		return 0, nil
	}
	c.Status = to
	s.historyID++
	entry.ID = s.historyID
	entry.CreatedAt = time.Now()
	c.History = append(c.History, *entry)
	return 1, nil
}

func (s *memStore) UpdateLatestNote(complaintID, note string) (int64, error) {
	c, ok := s.complaints[complaintID]
	if !ok || len(c.History) == 0 {
		return 0, nil
	}
	c.History[len(c.History)-1].Note = note
	return 1, nil
}

func (s *memStore) AssignComplaint(id, assigneeID string) error {
	if c, ok := s.complaints[id]; ok {
		c.AssigneeID = &assigneeID
	}
	return nil
}

func (s *memStore) DeleteComplaint(id string) error {
	delete(s.complaints, id)
	return nil
}

func (s *memStore) ToggleLike(id, subjectID string) (bool, int, error) {
	c, ok := s.complaints[id]
	if !ok {
		return false, 0, nil
	}
	for i, liker := range c.Likes {
		if liker == subjectID {
			c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
			return false, len(c.Likes), nil
		}
	}
	c.Likes = append(c.Likes, subjectID)
	return true, len(c.Likes), nil
}

func (s *memStore) GetDashboard(ownerID string) (*models.Dashboard, error) {
	return s.dashboards[ownerID], nil
}

func (s *memStore) SaveDashboard(d *models.Dashboard) error {
	s.dashboards[d.OwnerID] = d
	return nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (s *memStore) ApplyDashboardDelta(ownerID string, delta models.DashboardDelta) error {
	d, ok := s.dashboards[ownerID]
	if !ok {
		d = &models.Dashboard{OwnerID: ownerID}
		s.dashboards[ownerID] = d
	}
	d.Total = clamp(d.Total + delta.Total)
	d.Pending = clamp(d.Pending + delta.Pending)
	d.InProgress = clamp(d.InProgress + delta.InProgress)
	d.Resolved = clamp(d.Resolved + delta.Resolved)
	d.Rejected = clamp(d.Rejected + delta.Rejected)
	return nil
}

func (s *memStore) CountComplaintsByStatus(ownerID string) (map[models.Status]int64, error) {
	counts := make(map[models.Status]int64)
	for _, c := range s.complaints {
		if c.OwnerID == ownerID {
			counts[c.Status]++
		}
	}
	return counts, nil
}

func (s *memStore) ListOwnerIDs() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range s.complaints {
		if !seen[c.OwnerID] {
			seen[c.OwnerID] = true
			ids = append(ids, c.OwnerID)
		}
	}
	return ids, nil
}

func (s *memStore) GetCachedDashboard(ownerID string) (*models.Dashboard, error) { return nil, nil }
func (s *memStore) CacheDashboard(d *models.Dashboard) error                     { return nil }
func (s *memStore) InvalidateDashboard(ownerID string) error                     { return nil }
