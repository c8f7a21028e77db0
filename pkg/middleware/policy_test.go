package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeEmail(t *testing.T) {
	cases := []struct {
		name      string
		claims    map[string]interface{}
		requested string
		allow     bool
	}{
		{"match", map[string]interface{}{"email": "a@x.com"}, "a@x.com", true},
		{"mismatch", map[string]interface{}{"email": "b@x.com"}, "a@x.com", false},
		{"case sensitive", map[string]interface{}{"email": "A@x.com"}, "a@x.com", false},
		{"empty request", map[string]interface{}{"email": "a@x.com"}, "", false},
		{"no email claim", map[string]interface{}{"name": "A"}, "a@x.com", false},
		{"non-string email", map[string]interface{}{"email": 42}, "42", false},
		{"nil claims", nil, "a@x.com", false},
		{"both empty", map[string]interface{}{"email": ""}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeEmail(tc.claims, tc.requested)
			if tc.allow {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestRequireEmailScope(t *testing.T) {
	g := gin.New()
	var reached int
	g.GET("/mine", AuthMiddleware(&fakeVerifier{}, nil), RequireEmailScope("email"), func(c *gin.Context) {
		reached++
		c.Status(http.StatusOK)
	})

	do := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/mine"+query, nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "goodtoken"})
		rw := httptest.NewRecorder()
		g.ServeHTTP(rw, req)
		return rw
	}

	rw := do("?email=someone@else.com")
	require.Equal(t, http.StatusForbidden, rw.Code)
	require.JSONEq(t, `{"message":"forbidden access"}`, rw.Body.String())

	rw = do("")
	require.Equal(t, http.StatusForbidden, rw.Code)
	require.Equal(t, 0, reached)

	rw = do("?email=test@example.com")
	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, 1, reached)
}
