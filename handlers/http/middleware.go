package httpHandler

import (
	"net/http"

	"irrigation-server/auth"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "irrigation_session"
	sessionContextKey = "session"
)

// AuthMiddleware gates routes on the capability set of the caller's
// role, resolved from the session cookie.
type AuthMiddleware struct {
	sessions *auth.SessionStore
}

func NewAuthMiddleware(sessions *auth.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireCapability authenticates the session and checks that the
// caller's role grants the capability. 401 without a valid session,
// 403 when the role lacks the capability.
func (m *AuthMiddleware) RequireCapability(cap auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		session, ok := m.sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		if !auth.HasCapability(session.RoleName, cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireSession authenticates without demanding any capability,
// for endpoints like /api/current-user.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		session, ok := m.sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// CurrentSession pulls the session the middleware stored on the
// context.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return auth.Session{}, false
	}
	session, ok := value.(auth.Session)
	return session, ok
}
