package handler

import (
	"errors"
	"net/http"
	"time"

	"fixitfast/backend/internal/api/middleware"
	"fixitfast/backend/internal/dashboard"
	"fixitfast/backend/internal/models"
	"fixitfast/backend/internal/storage"
	"fixitfast/backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the lifecycle and dashboard services.
type Handler struct {
	Workflow  *workflow.Service
	Dashboard *dashboard.Service
	Storage   storage.Storage
	JWTSecret string
	JWTTTL    time.Duration
}

func NewHandler(wf *workflow.Service, dash *dashboard.Service, s storage.Storage, jwtSecret string, jwtTTL time.Duration) *Handler {
	return &Handler{
		Workflow:  wf,
		Dashboard: dash,
		Storage:   s,
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,
	}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", middleware.Auth(h.JWTSecret), h.Me)

	authed := r.Group("/", middleware.Auth(h.JWTSecret))
	authed.POST("/complaints", h.CreateComplaint)
	authed.GET("/complaints", h.ListComplaints)
	authed.GET("/complaints/:id", h.GetComplaint)
	authed.POST("/complaints/:id/like", h.ToggleLike)
	authed.DELETE("/complaints/:id", h.DeleteComplaint)
	authed.GET("/dashboard/:owner", h.GetDashboard)

	admin := r.Group("/", middleware.Auth(h.JWTSecret, models.RoleAdmin))
	admin.PUT("/complaints/:id/status", h.UpdateStatus)
	admin.PUT("/complaints/:id/assign", h.AssignComplaint)
	admin.PUT("/complaints/:id/history/note", h.AmendNote)
	admin.POST("/dashboard/:owner/recompute", h.RecomputeDashboard)
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

// respondError translates the workflow error taxonomy to HTTP status codes.
func respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, workflow.ErrValidation), errors.Is(err, workflow.ErrInvalidTransition):
		code = http.StatusBadRequest
	case errors.Is(err, workflow.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, workflow.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, workflow.ErrConflict):
		code = http.StatusConflict
	}
	c.JSON(code, gin.H{"ok": false, "error": err.Error()})
}
