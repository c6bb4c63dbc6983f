package workflow_test

import (
	"fixitfast/backend/internal/models"
	"fixitfast/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) PromoteUser(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

// Complaint operations
func (m *MockStorage) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints(f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) TransitionComplaintStatus(id string, from, to models.Status, entry *models.StatusChange) (int64, error) {
	args := m.Called(id, from, to, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) UpdateLatestNote(complaintID, note string) (int64, error) {
	args := m.Called(complaintID, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) AssignComplaint(id, assigneeID string) error {
	args := m.Called(id, assigneeID)
	return args.Error(0)
}

func (m *MockStorage) DeleteComplaint(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ToggleLike(id, subjectID string) (bool, int, error) {
	args := m.Called(id, subjectID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// Dashboard operations
func (m *MockStorage) GetDashboard(ownerID string) (*models.Dashboard, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dashboard), args.Error(1)
}

func (m *MockStorage) SaveDashboard(d *models.Dashboard) error {
	args := m.Called(d)
	return args.Error(0)
}

func (m *MockStorage) ApplyDashboardDelta(ownerID string, delta models.DashboardDelta) error {
	args := m.Called(ownerID, delta)
	return args.Error(0)
}

func (m *MockStorage) CountComplaintsByStatus(ownerID string) (map[models.Status]int64, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Status]int64), args.Error(1)
}

func (m *MockStorage) ListOwnerIDs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Dashboard cache
func (m *MockStorage) GetCachedDashboard(ownerID string) (*models.Dashboard, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dashboard), args.Error(1)
}

func (m *MockStorage) CacheDashboard(d *models.Dashboard) error {
	args := m.Called(d)
	return args.Error(0)
}

func (m *MockStorage) InvalidateDashboard(ownerID string) error {
	args := m.Called(ownerID)
	return args.Error(0)
}

// MockAggregator is a mock implementation of the workflow.Aggregator
// interface consumed by the lifecycle service.
type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) OnCreate(ownerID string) error {
	args := m.Called(ownerID)
	return args.Error(0)
}

func (m *MockAggregator) OnTransition(ownerID string, from, to models.Status) error {
	args := m.Called(ownerID, from, to)
	return args.Error(0)
}

func (m *MockAggregator) OnDelete(ownerID string, status models.Status) error {
	args := m.Called(ownerID, status)
	return args.Error(0)
}
