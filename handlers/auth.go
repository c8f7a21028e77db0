package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bidboard/marketplace-api/internal/tokens"
	"github.com/bidboard/marketplace-api/pkg/logger"
	"github.com/bidboard/marketplace-api/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Revoker records a token as revoked for ttl. Optional.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthHandler issues and clears session cookies.
type AuthHandler struct {
	issuer     *tokens.Issuer
	revoker    Revoker
	production bool
}

// NewAuthHandler wires the session endpoints. In production the cookie is
// Secure with SameSite=None so a cross-site frontend can send it; otherwise
// it is SameSite=Strict over plain HTTP.
func NewAuthHandler(issuer *tokens.Issuer, revoker Revoker, production bool) *AuthHandler {
	return &AuthHandler{issuer: issuer, revoker: revoker, production: production}
}

func (h *AuthHandler) Register(r gin.IRoutes) {
	r.POST("/jwt", h.Issue)
	r.POST("/logout", h.Revoke)
}

// Issue signs the posted identity payload and stores it in the session cookie.
func (h *AuthHandler) Issue(c *gin.Context) {
	var identity map[string]interface{}
	if err := c.ShouldBindJSON(&identity); err != nil || identity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "identity payload must be a JSON object"})
		return
	}
	token, err := h.issuer.Issue(identity)
	if err != nil {
		logger.Errorf("failed to sign session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	// browser-session cookie; the token carries its own exp
	h.setCookie(c, token, 0)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Revoke clears the session cookie. When a revoker is configured the current
// token is also denied until it would have expired.
func (h *AuthHandler) Revoke(c *gin.Context) {
	raw, _ := c.Cookie(middleware.SessionCookie)
	h.setCookie(c, "", -1)

	if raw != "" && h.revoker != nil {
		if exp, err := h.issuer.Expiry(raw); err == nil {
			if err := h.revoker.Revoke(c.Request.Context(), raw, time.Until(exp)); err != nil {
				logger.Errorf("failed to revoke session token: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to revoke session"})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// maxAge < 0 emits Max-Age=0, deleting the cookie.
func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.production, true)
}
