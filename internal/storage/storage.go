package storage

import (
	"context"
	"errors"
	"log"
	"strings"

	"fixitfast/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence boundary of the service. Complaint and user
// rows live in PostgreSQL; dashboard reads go through a Redis cache.
type Storage interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	PromoteUser(email string) error

	CreateComplaint(c *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints(f ComplaintFilter) ([]models.Complaint, int64, error)
	TransitionComplaintStatus(id string, from, to models.Status, entry *models.StatusChange) (int64, error)
	UpdateLatestNote(complaintID, note string) (int64, error)
	AssignComplaint(id, assigneeID string) error
	DeleteComplaint(id string) error
	ToggleLike(id, subjectID string) (bool, int, error)

	GetDashboard(ownerID string) (*models.Dashboard, error)
	SaveDashboard(d *models.Dashboard) error
	ApplyDashboardDelta(ownerID string, delta models.DashboardDelta) error
	CountComplaintsByStatus(ownerID string) (map[models.Status]int64, error)
	ListOwnerIDs() ([]string, error)

	GetCachedDashboard(ownerID string) (*models.Dashboard, error)
	CacheDashboard(d *models.Dashboard) error
	InvalidateDashboard(ownerID string) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. The Redis client may be nil (e.g. in the
// admin CLI); cache methods then degrade to no-ops.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser stores a new user in PostgreSQL.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// GetUserByEmail returns the user with the given email, or nil if absent.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given ID, or nil if absent.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PromoteUser grants the administrator role to the user with the given email.
func (s *Service) PromoteUser(email string) error {
	res := s.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateComplaint stores a new complaint together with its initial history
// entry (GORM persists the association in the same create).
func (s *Service) CreateComplaint(c *models.Complaint) error {
	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint for owner %s: %v", c.OwnerID, err)
		return err
	}
	return nil
}

// GetComplaintByID returns the complaint with its history ordered by change
// time, or nil if the complaint does not exist.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// sortColumns whitelists the sort keys the list endpoint accepts.
// Unknown keys fall back to created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
}

// ComplaintFilter is the query shape of the read-only list endpoint.
// Zero-valued fields are not applied.
type ComplaintFilter struct {
	OwnerID   string
	Status    models.Status
	Category  models.Category
	Priority  models.Priority
	Location  string // substring match
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// ListComplaints returns one page of complaints matching the filter together
// with the total match count. It never mutates state.
func (s *Service) ListComplaints(f ComplaintFilter) ([]models.Complaint, int64, error) {
	q := s.DB.Model(&models.Complaint{})
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("ERROR: Failed to count complaints: %v", err)
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var items []models.Complaint
	err := q.Order(col + " " + dir).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, 0, err
	}
	return items, total, nil
}

// TransitionComplaintStatus moves a complaint from one status to another and
// appends the matching audit-trail entry in the same transaction, with a
// guard on the current status. The returned count is 0 when the complaint is
// missing or its status no longer equals from, which the caller treats as a
// conflict; a stale from is never applied and no entry is written for it.
func (s *Service) TransitionComplaintStatus(id string, from, to models.Status, entry *models.StatusChange) (int64, error) {
	var affected int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Complaint{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to transition complaint %s: %v", id, err)
		return 0, err
	}
	return affected, nil
}

// UpdateLatestNote amends the note of the most recent history entry of a
// complaint. Returns the number of rows touched (0 if the complaint has no
// history, i.e. does not exist).
func (s *Service) UpdateLatestNote(complaintID, note string) (int64, error) {
	res := s.DB.Exec(`
        UPDATE status_changes SET note = ?, updated_at = NOW()
        WHERE id = (
            SELECT id FROM status_changes
            WHERE complaint_id = ? AND deleted_at IS NULL
            ORDER BY created_at DESC, id DESC
            LIMIT 1
        )`, note, complaintID)
	if res.Error != nil {
		log.Printf("ERROR: Failed to amend note for complaint %s: %v", complaintID, res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// AssignComplaint sets the assignee of a complaint.
func (s *Service) AssignComplaint(id, assigneeID string) error {
	return s.DB.Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("assignee_id", assigneeID).Error
}

// DeleteComplaint removes a complaint and its history.
func (s *Service) DeleteComplaint(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("complaint_id = ?", id).Delete(&models.StatusChange{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Complaint{}, "id = ?", id).Error
	})
}

// ToggleLike flips subjectID's membership in the complaint's likes set in a
// single UPDATE, so concurrent toggles serialize on the row. It returns the
// resulting membership and set size. Applying it twice restores the
// original state.
func (s *Service) ToggleLike(id, subjectID string) (bool, int, error) {
	rawSQL := `
        UPDATE complaints
        SET likes = CASE
                WHEN ?::text = ANY(likes) THEN array_remove(likes, ?::text)
                ELSE array_append(COALESCE(likes, '{}'), ?::text)
            END,
            updated_at = NOW()
        WHERE id = ?
        RETURNING ?::text = ANY(likes) AS liked,
                  COALESCE(array_length(likes, 1), 0) AS like_count
    `

	var out struct {
		Liked     bool
		LikeCount int
	}
	res := s.DB.Raw(rawSQL, subjectID, subjectID, subjectID, id, subjectID).Scan(&out)
	if res.Error != nil {
		log.Printf("ERROR: Failed to toggle like on complaint %s: %v", id, res.Error)
		return false, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return false, 0, gorm.ErrRecordNotFound
	}
	return out.Liked, out.LikeCount, nil
}

// ListOwnerIDs returns the distinct owners that currently have complaints.
func (s *Service) ListOwnerIDs() ([]string, error) {
	var ids []string
	if err := s.DB.Model(&models.Complaint{}).
		Distinct("owner_id").
		Pluck("owner_id", &ids).Error; err != nil {
		log.Printf("ERROR: Failed to list complaint owners: %v", err)
		return nil, err
	}
	return ids, nil
}
