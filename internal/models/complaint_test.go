package models_test

import (
	"testing"

	"fixitfast/backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// TestComplaintBeforeCreate_Defaults verifies that the BeforeCreate hook
// generates a valid UUID and fills in the initial status and priority.
func TestComplaintBeforeCreate_Defaults(t *testing.T) {
	// Arrange
	c := &models.Complaint{
		OwnerID:     "user-1",
		Title:       "Water outage",
		Description: "No water on the whole street since this morning.",
		Category:    models.CategoryWater,
		Location:    "Oak Street",
	}
	assert.Empty(t, c.ID, "ID should be empty before BeforeCreate")

	// Act
	err := c.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	// Assert
	assert.NoError(t, err)
	_, parseErr := uuid.Parse(c.ID)
	assert.NoError(t, parseErr, "ID must be a valid UUID string")
	assert.Equal(t, models.StatusPending, c.Status, "a new complaint always starts Pending")
	assert.Equal(t, models.PriorityMedium, c.Priority, "priority defaults to Medium")
}

// TestComplaintBeforeCreate_PreservesExistingValues verifies the hook never
// overwrites an explicit ID, priority, or status.
func TestComplaintBeforeCreate_PreservesExistingValues(t *testing.T) {
	existingID := uuid.New().String()
	c := &models.Complaint{
		ID:       existingID,
		Priority: models.PriorityCritical,
		Status:   models.StatusInProgress,
	}

	err := c.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, c.ID)
	assert.Equal(t, models.PriorityCritical, c.Priority)
	assert.Equal(t, models.StatusInProgress, c.Status)
}

func TestLikesSetMembership(t *testing.T) {
	c := &models.Complaint{Likes: pq.StringArray{"u-1", "u-2"}}

	assert.Equal(t, 2, c.LikeCount())
	assert.True(t, c.LikedBy("u-1"))
	assert.False(t, c.LikedBy("u-3"))

	empty := &models.Complaint{}
	assert.Equal(t, 0, empty.LikeCount())
	assert.False(t, empty.LikedBy("u-1"))
}

func TestStatusValidation(t *testing.T) {
	for _, s := range models.AllStatuses {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, models.Status("Escalated").Valid())
	assert.False(t, models.Status("").Valid())
}

func TestCategoryAndPriorityValidation(t *testing.T) {
	assert.True(t, models.CategorySanitation.Valid())
	assert.False(t, models.Category("Potholes").Valid())
	assert.True(t, models.PriorityCritical.Valid())
	assert.False(t, models.Priority("Urgent").Valid())
}

// BenchmarkComplaintBeforeCreate measures UUID generation performance.
func BenchmarkComplaintBeforeCreate(b *testing.B) {
	c := &models.Complaint{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ID = "" // Reset ID
		_ = c.BeforeCreate(nil)
	}
}
