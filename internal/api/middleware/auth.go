package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fixitfast/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Context keys under which the resolved subject is stored.
const (
	subjectKey = "subjectID"
	roleKey    = "role"
)

// Claims is the custom JWT claim set carried by bearer tokens:
// the opaque subject ID and its role.
type Claims struct {
	SubjectID string      `json:"subjectId"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed bearer token for the subject.
func GenerateToken(subjectID string, role models.Role, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fixitfast-service",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Auth validates the bearer token and, if roles are given, enforces that the
// subject holds one of them. The resolved subject ID and role are stored in
// the gin context for handlers.
func Auth(secret string, requiredRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.SubjectID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(subjectKey, claims.SubjectID)
		c.Set(roleKey, claims.Role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// CurrentSubject returns the authenticated subject ID from the context.
func CurrentSubject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

// CurrentRole returns the authenticated subject's role from the context.
func CurrentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(roleKey); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return models.RoleMember
}
