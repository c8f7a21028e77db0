package tokens

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func claimsOf(t *testing.T, i *Issuer, raw string) map[string]interface{} {
	t.Helper()
	tok, err := i.Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	return claims
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	i, err := NewIssuer(testSecret, 0)
	require.NoError(t, err)

	identity := map[string]interface{}{"email": "a@x.com", "name": "Alice"}
	raw, err := i.Issue(identity)
	require.NoError(t, err)

	claims := claimsOf(t, i, raw)
	require.Equal(t, "a@x.com", claims["email"])
	require.Equal(t, "Alice", claims["name"])

	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	require.Equal(t, int64((7 * 24 * time.Hour).Seconds()), exp-iat)
}

func TestIssue_OverridesReservedClaims(t *testing.T) {
	i, err := NewIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	raw, err := i.Issue(map[string]interface{}{"email": "a@x.com", "exp": float64(9999999999)})
	require.NoError(t, err)

	exp, err := i.Expiry(raw)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestVerify_OlderThanSevenDaysFails(t *testing.T) {
	i, err := NewIssuer(testSecret, DefaultSessionTTL)
	require.NoError(t, err)
	i.now = func() time.Time { return time.Now().Add(-DefaultSessionTTL - time.Minute) }

	raw, err := i.Issue(map[string]interface{}{"email": "old@x.com"})
	require.NoError(t, err)

	_, err = i.Verify(context.Background(), raw)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WithinSevenDaysSucceeds(t *testing.T) {
	i, err := NewIssuer(testSecret, DefaultSessionTTL)
	require.NoError(t, err)
	i.now = func() time.Time { return time.Now().Add(-DefaultSessionTTL + time.Hour) }

	raw, err := i.Issue(map[string]interface{}{"email": "recent@x.com"})
	require.NoError(t, err)
	require.Equal(t, "recent@x.com", claimsOf(t, i, raw)["email"])
}

func TestVerify_WrongSecretFails(t *testing.T) {
	a, err := NewIssuer("secret-one-32-bytes-xxxxxxxxxxxxxxxx", 0)
	require.NoError(t, err)
	b, err := NewIssuer("different-secret-xxxxxxxxxxxxxxxx", 0)
	require.NoError(t, err)

	raw, err := a.Issue(map[string]interface{}{"email": "bob@example.com"})
	require.NoError(t, err)
	_, err = b.Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	i, err := NewIssuer(testSecret, 0)
	require.NoError(t, err)
	_, err = i.Verify(context.Background(), "not.a.jwt")
	require.Error(t, err)
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	i, err := NewIssuer(testSecret, 0)
	require.NoError(t, err)
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"x@x.com","exp":9999999999}`))
	_, err = i.Verify(context.Background(), headerEnc+"."+payloadEnc+".")
	require.Error(t, err)
}

func TestVerify_MissingExpRejected(t *testing.T) {
	i, err := NewIssuer(testSecret, 0)
	require.NoError(t, err)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@x.com"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = i.Verify(context.Background(), raw)
	require.Error(t, err)
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	i, err := NewIssuer(testSecret, 5*time.Minute)
	require.NoError(t, err)
	raw, err := i.Issue(map[string]interface{}{"email": "t@example.com"})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payloadBytes), "t@example.com", "attacker@example.com", 1)))

	_, err = i.Verify(context.Background(), strings.Join(parts, "."))
	require.Error(t, err)
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)
}
