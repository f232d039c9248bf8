package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// sessionCookieName is the cookie carrying the opaque session token. The
// token never appears in any response body.
const sessionCookieName = "session_token"

const userIDKey = "userID"

// sessionMiddleware resolves the session cookie to a user id or rejects the
// request. Missing, unknown, revoked and expired tokens are all answered
// with the same generic 401.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookieName)

		userID, err := s.auth.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, statusResponse{Message: "authentication required"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// MustUserID returns the user id stored by sessionMiddleware. It must only
// be called from handlers behind that middleware.
func MustUserID(c *gin.Context) string {
	v, _ := c.Get(userIDKey)
	return v.(string)
}

// corsMiddleware allows credentialed requests from the configured origins.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(s.allowedOrigins))
	for _, o := range s.allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setSessionCookie delivers the token as an HTTP-only, secure, same-site
// restricted cookie. maxAge <= 0 clears the cookie.
func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", true, true)
}
