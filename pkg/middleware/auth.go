package middleware

import (
	"context"
	"net/http"

	"github.com/bidboard/marketplace-api/pkg/logger"
	"github.com/bidboard/marketplace-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "token"

// ClaimsKey is the gin context key holding the verified claims map.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Denylist reports tokens revoked before their expiry. May be nil.
type Denylist interface {
	IsRevoked(ctx context.Context, raw string) (bool, error)
}

// AuthMiddleware returns a Gin middleware that verifies the session cookie.
// Requests without a valid token are aborted with 401 before any handler runs.
func AuthMiddleware(ver Verifier, deny Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			reject(c, http.StatusUnauthorized, metrics.ReasonMissing, "unauthorized access")
			return
		}

		tok, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			logger.Debugf("session token rejected: %v", err)
			reject(c, http.StatusUnauthorized, metrics.ReasonInvalid, "unauthorized access")
			return
		}

		if deny != nil {
			revoked, err := deny.IsRevoked(c.Request.Context(), raw)
			if err != nil {
				logger.Errorf("denylist lookup failed: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
				return
			}
			if revoked {
				reject(c, http.StatusUnauthorized, metrics.ReasonRevoked, "unauthorized access")
				return
			}
		}

		var claims map[string]interface{}
		if err := tok.Claims(&claims); err != nil {
			reject(c, http.StatusUnauthorized, metrics.ReasonInvalid, "unauthorized access")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(c *gin.Context) (map[string]interface{}, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(map[string]interface{})
	return claims, ok
}

func reject(c *gin.Context, status int, reason, message string) {
	metrics.AuthRejected.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
