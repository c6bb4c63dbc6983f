package handler

import (
	"net/http"
	"strings"

	"fixitfast/backend/internal/api/middleware"
	"fixitfast/backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a member account and returns a bearer token for it.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := h.Storage.GetUserByEmail(email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(req.Name),
		Role:         models.RoleMember,
	}
	if err := h.Storage.CreateUser(user); err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, h.JWTSecret, h.JWTTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, gin.H{"token": token, "user": user})
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.Storage.GetUserByEmail(email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, h.JWTSecret, h.JWTTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"token": token, "user": user})
}

// Me returns the profile of the authenticated subject.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Storage.GetUserByID(middleware.CurrentSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
		return
	}
	ok(c, user)
}
