package auth

import (
	"net/http"
	"strings"

	"ecotrivia/backend/internal/session"
	"ecotrivia/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the *session.Session.
const SessionKey = "session"

// SessionMiddleware resolves the Bearer token to an open session and aborts
// with 401 otherwise. Browsers' EventSource and WebSocket cannot set headers,
// so a "token" query parameter is accepted too.
func SessionMiddleware(secret string, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearer(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		id, err := jwt.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		s, err := sessions.Get(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		c.Set(SessionKey, s)
		c.Next()
	}
}

// Session returns the session stored by SessionMiddleware.
func Session(c *gin.Context) *session.Session {
	s, _ := c.MustGet(SessionKey).(*session.Session)
	return s
}

func bearer(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
