package auth

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	access "github.com/quintafc/team-sync/pkg/accessCode"
)

const RoleAdmin = "admin"

// Registry tracks access codes issued by the admin service. A code is only
// honored while it is registered; logout revokes it.
type Registry struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewRegistry() *Registry {
	return &Registry{codes: map[string]string{}}
}

func (r *Registry) Register(code, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[code] = role
}

func (r *Registry) Revoke(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, code)
}

func (r *Registry) Role(code string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.codes[code]
	return role, ok
}

// AuthMiddleware gates a route group on a registered admin access code. This
// is the transport-level check; the session's own capability check stays
// authoritative either way.
func AuthMiddleware(registry *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		code := strings.TrimPrefix(authHeader, "Bearer ")

		role, _, err := access.Decode(code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access code"})
			c.Abort()
			return
		}

		registered, ok := registry.Role(code)
		if !ok || registered != role || role != RoleAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "access code not granted"})
			c.Abort()
			return
		}

		c.Set("role", role)

		c.Next()
	}
}
