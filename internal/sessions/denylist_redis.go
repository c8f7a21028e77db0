package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records logged-out session tokens in Redis until they expire.
// A Denylist with a nil client is a no-op: nothing is recorded and every
// token is reported as live.
type Denylist struct {
	client *redis.Client
	prefix string
}

// NewDenylist creates a Redis-backed denylist. Prefix may be empty.
func NewDenylist(client *redis.Client, prefix string) *Denylist {
	if prefix == "" {
		prefix = "denylist:session:"
	}
	return &Denylist{client: client, prefix: prefix}
}

// keys hash the token so raw credentials never land in Redis
func (d *Denylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return d.prefix + hex.EncodeToString(sum[:])
}

// Revoke stores the token with the given TTL. Non-positive TTLs are ignored
// since such a token is already expired.
func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if d == nil || d.client == nil || ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(token), "1", ttl).Err()
}

// IsRevoked reports whether the token was revoked and has not yet expired.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if d == nil || d.client == nil {
		return false, nil
	}
	n, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
