package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/errors"
	"github.com/nutrileaf/nutrileaf-client/internal/session"
)

// Context keys for the attached session
const (
	SessionTokenKey = "session_token"
	ProfileKey      = "session_profile"
)

// SessionMiddleware guards surfaces that need a signed-in user. It reads
// the gateway's own session cache; it does not verify anything against
// the backend, which rejects a bad token itself on the proxied call.
type SessionMiddleware struct {
	cache *session.Cache
}

func NewSessionMiddleware(cache *session.Cache) *SessionMiddleware {
	return &SessionMiddleware{cache: cache}
}

// RequireSession loads the cached session into the request context and
// rejects the request when there is none.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sess := m.cache.Load(c.Request.Context())
		if sess == nil {
			log.Warn("No cached session for authenticated surface", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(SessionTokenKey, sess.Token)
		c.Set(ProfileKey, sess.Profile)

		log.Debug("Session attached", map[string]interface{}{
			"user_id": sess.Profile.ID,
			"role":    sess.Profile.Role,
		})

		c.Next()
	}
}

// RequireAdmin rejects requests whose cached role is not admin. The role
// is advisory client-side; the backend re-checks it on every /admin call.
func (m *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		profile, ok := GetProfile(c)
		if !ok || !profile.IsAdmin() {
			log.Warn("Admin surface refused for non-admin session", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, 403, errors.AuthzAdminOnly, "Admin access only")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetToken extracts the bearer token from context
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(SessionTokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}

// GetProfile extracts the cached profile from context
func GetProfile(c *gin.Context) (model.SessionProfile, bool) {
	profile, exists := c.Get(ProfileKey)
	if !exists {
		return model.SessionProfile{}, false
	}
	return profile.(model.SessionProfile), true
}
