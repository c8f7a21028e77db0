package middleware

import (
	"errors"
	"net/http"

	"github.com/bidboard/marketplace-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

var ErrForbidden = errors.New("forbidden access")

// AuthorizeEmail is the single authorization rule of the service: the
// authenticated identity may only read data scoped to its own email.
// Claims without a string email, or an empty requested email, are denied.
func AuthorizeEmail(claims map[string]interface{}, requested string) error {
	email, _ := claims["email"].(string)
	if email == "" || requested == "" || email != requested {
		return ErrForbidden
	}
	return nil
}

// RequireEmailScope applies AuthorizeEmail to the named query parameter.
// Must run after AuthMiddleware.
func RequireEmailScope(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		if err := AuthorizeEmail(claims, c.Query(param)); err != nil {
			reject(c, http.StatusForbidden, metrics.ReasonForbidden, err.Error())
			return
		}
		c.Next()
	}
}
