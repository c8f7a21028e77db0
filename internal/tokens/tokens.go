package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bidboard/marketplace-api/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a session token.
const DefaultSessionTTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("token signing secret is empty")

// Issuer signs and verifies HS256 session tokens. Tokens are not stored;
// validity depends only on signature and exp.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer for secret. A non-positive ttl selects DefaultSessionTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs the identity payload. iat and exp are always set by the issuer,
// overriding any values the payload carries.
func (i *Issuer) Issue(identity map[string]interface{}) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{}
	for k, v := range identity {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(i.ttl).Unix()
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(i.secret)
}

func (i *Issuer) parse(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}
	return claims, nil
}

// Verify implements middleware.Verifier.
func (i *Issuer) Verify(_ context.Context, raw string) (middleware.Token, error) {
	claims, err := i.parse(raw)
	if err != nil {
		return nil, err
	}
	return &sessionToken{claims: claims}, nil
}

// Expiry verifies raw and returns its exp claim.
func (i *Issuer) Expiry(raw string) (time.Time, error) {
	claims, err := i.parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("session token has no exp: %w", err)
	}
	return exp.Time, nil
}

// sessionToken exposes verified claims.
type sessionToken struct {
	claims jwt.MapClaims
}

func (t *sessionToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
