// Package workflow implements the complaint lifecycle: creation, the status
// state machine, deletion, likes, and the authorization rules around them.
package workflow

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"fixitfast/backend/internal/models"
	"fixitfast/backend/internal/storage"
)

// Aggregator receives one counter delta per lifecycle event. Implemented by
// the dashboard service. Delta failures are tolerated: the aggregate heals
// on the next recompute, so the triggering operation still succeeds.
type Aggregator interface {
	OnCreate(ownerID string) error
	OnTransition(ownerID string, from, to models.Status) error
	OnDelete(ownerID string, status models.Status) error
}

// Service handles the business logic of the complaint lifecycle.
type Service struct {
	Storage   storage.Storage
	Dashboard Aggregator
}

// NewService creates a new lifecycle service.
func NewService(s storage.Storage, agg Aggregator) *Service {
	return &Service{Storage: s, Dashboard: agg}
}

// CreateInput carries the citizen-supplied fields of a new complaint.
type CreateInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Priority    models.Priority `json:"priority"`
	Location    string          `json:"location"`
}

func validateCreate(in *CreateInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" || utf8.RuneCountInString(in.Title) > 100 {
		return fmt.Errorf("%w: title must be 1-100 characters", ErrValidation)
	}
	if n := utf8.RuneCountInString(in.Description); n < 10 || n > 1000 {
		return fmt.Errorf("%w: description must be 10-1000 characters", ErrValidation)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}
	if in.Location == "" || utf8.RuneCountInString(in.Location) > 200 {
		return fmt.Errorf("%w: location must be 1-200 characters", ErrValidation)
	}
	return nil
}

// Create validates the input and files a new complaint in Pending state with
// its initial history entry, then bumps the owner's dashboard counters.
func (s *Service) Create(ownerID string, in CreateInput) (*models.Complaint, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	c := &models.Complaint{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    priority,
		Location:    in.Location,
		Status:      models.StatusPending,
		History: []models.StatusChange{
			{Status: models.StatusPending, ChangedBy: ownerID, Note: "created"},
		},
	}
	if err := s.Storage.CreateComplaint(c); err != nil {
		return nil, err
	}

	// The complaint row and the counter delta are separate writes; a failure
	// here leaves the aggregate stale until the next recompute.
	if err := s.Dashboard.OnCreate(ownerID); err != nil {
		log.Printf("ERROR: Dashboard delta failed after creating complaint %s: %v", c.ID, err)
	}
	return c, nil
}

// Get returns a complaint with its history. Members may only read their own.
func (s *Service) Get(id, subject string, role models.Role) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if !CanView(subject, role, c.OwnerID) {
		return nil, ErrForbidden
	}
	return c, nil
}

// List returns one page of complaints. Members are always scoped to their
// own complaints regardless of the requested owner filter.
func (s *Service) List(subject string, role models.Role, f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	if role != models.RoleAdmin {
		f.OwnerID = subject
	}
	return s.Storage.ListComplaints(f)
}

// Transition moves a complaint to targetStatus on behalf of an
// administrator and shifts the owner's dashboard counters. The status update
// and its audit entry land in one transaction, guarded on the current
// status, so a concurrent transition loses with ErrConflict and may be
// retried.
func (s *Service) Transition(id, actor string, role models.Role, target models.Status, note string) (*models.Complaint, error) {
	if !CanChangeStatus(role) {
		return nil, ErrForbidden
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	from := c.Status
	if !CanTransition(from, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, target)
	}

	entry := &models.StatusChange{
		ComplaintID: id,
		Status:      target,
		ChangedBy:   actor,
		Note:        note,
	}
	affected, err := s.Storage.TransitionComplaintStatus(id, from, target, entry)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Someone else moved the complaint first; the caller may retry
		// against the fresh status.
		return nil, ErrConflict
	}

	if err := s.Dashboard.OnTransition(c.OwnerID, from, target); err != nil {
		log.Printf("ERROR: Dashboard delta failed after transitioning complaint %s: %v", id, err)
	}

	return s.Storage.GetComplaintByID(id)
}

// Delete removes a complaint. Owners may delete only while it is Pending;
// administrators may delete in any state.
func (s *Service) Delete(id, actor string, role models.Role) error {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	status := c.Status
	if !CanDelete(actor, role, c.OwnerID, status) {
		return ErrForbidden
	}

	if err := s.Storage.DeleteComplaint(id); err != nil {
		return err
	}

	if err := s.Dashboard.OnDelete(c.OwnerID, status); err != nil {
		log.Printf("ERROR: Dashboard delta failed after deleting complaint %s: %v", id, err)
	}
	return nil
}

// ToggleLike flips the subject's membership in the complaint's likes set and
// returns the resulting membership and set size. Repeated calls are safe:
// toggling twice restores the original state. The dashboard is not touched.
func (s *Service) ToggleLike(id, subject string) (bool, int, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return false, 0, err
	}
	if c == nil {
		return false, 0, ErrNotFound
	}
	liked, count, err := s.Storage.ToggleLike(id, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The complaint was deleted between the read above and the toggle.
		return false, 0, ErrNotFound
	}
	return liked, count, err
}

// Assign sets an administrator as the complaint's assignee.
func (s *Service) Assign(id, actor string, role models.Role, assigneeID string) (*models.Complaint, error) {
	if role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	assignee, err := s.Storage.GetUserByID(assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil || assignee.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: assignee must be an administrator", ErrValidation)
	}

	if err := s.Storage.AssignComplaint(id, assigneeID); err != nil {
		return nil, err
	}
	return s.Storage.GetComplaintByID(id)
}

// AmendNote lets an administrator edit the note of the latest audit entry.
// This is the only legal mutation once a complaint is in a terminal state.
func (s *Service) AmendNote(id, actor string, role models.Role, note string) error {
	if role != models.RoleAdmin {
		return ErrForbidden
	}
	affected, err := s.Storage.UpdateLatestNote(id, note)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
