package handler

import (
	"net/http"
	"strconv"

	"fixitfast/backend/internal/api/middleware"
	"fixitfast/backend/internal/models"
	"fixitfast/backend/internal/storage"
	"fixitfast/backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

// CreateComplaint files a new complaint for the authenticated subject.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var in workflow.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	complaint, err := h.Workflow.Create(middleware.CurrentSubject(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, complaint)
}

// ListComplaints returns one page of complaints. Members see their own;
// administrators may filter across owners.
func (h *Handler) ListComplaints(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	f := storage.ComplaintFilter{
		OwnerID:   c.Query("user"),
		Status:    models.Status(c.Query("status")),
		Category:  models.Category(c.Query("category")),
		Priority:  models.Priority(c.Query("priority")),
		Location:  c.Query("location"),
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	items, total, err := h.Workflow.List(middleware.CurrentSubject(c), middleware.CurrentRole(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{
		"items": items,
		"total": total,
		"page":  f.Page,
		"limit": f.Limit,
	})
}

// GetComplaint returns a complaint with its full audit trail.
func (h *Handler) GetComplaint(c *gin.Context) {
	complaint, err := h.Workflow.Get(c.Param("id"), middleware.CurrentSubject(c), middleware.CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, complaint)
}

type statusRequest struct {
	Status models.Status `json:"status" binding:"required"`
	Note   string        `json:"note"`
}

// UpdateStatus transitions a complaint to a new status (administrator only).
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	complaint, err := h.Workflow.Transition(c.Param("id"),
		middleware.CurrentSubject(c), middleware.CurrentRole(c), req.Status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, complaint)
}

type assignRequest struct {
	AssigneeID string `json:"assigneeId" binding:"required"`
}

// AssignComplaint sets the complaint's assignee (administrator only).
func (h *Handler) AssignComplaint(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	complaint, err := h.Workflow.Assign(c.Param("id"),
		middleware.CurrentSubject(c), middleware.CurrentRole(c), req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, complaint)
}

type noteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AmendNote edits the note on the latest audit entry (administrator only).
// This remains legal after the complaint reaches a terminal state.
func (h *Handler) AmendNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.Workflow.AmendNote(c.Param("id"),
		middleware.CurrentSubject(c), middleware.CurrentRole(c), req.Note); err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"note": req.Note})
}

// ToggleLike flips the caller's like on a complaint.
func (h *Handler) ToggleLike(c *gin.Context) {
	liked, count, err := h.Workflow.ToggleLike(c.Param("id"), middleware.CurrentSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"liked": liked, "likes": count})
}

// DeleteComplaint removes a complaint, subject to the ownership rules.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	if err := h.Workflow.Delete(c.Param("id"),
		middleware.CurrentSubject(c), middleware.CurrentRole(c)); err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": true})
}
