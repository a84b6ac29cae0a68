package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until they would have expired anyway.
type Denylist struct {
	client *redis.Client
	prefix string
}

// NewDenylist returns a Denylist storing keys under prefix.
func NewDenylist(client *redis.Client, prefix string) *Denylist {
	if prefix == "" {
		prefix = "auth:revoked:"
	}
	return &Denylist{client: client, prefix: prefix}
}

// Revoke marks id as revoked for ttl. Non-positive ttls are ignored since the
// token is already expired.
func (d *Denylist) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.prefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("platform/cache: revoke %s: %w", id, err)
	}
	return nil
}

// Revoked reports whether id was revoked.
func (d *Denylist) Revoked(ctx context.Context, id string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("platform/cache: lookup %s: %w", id, err)
	}
	return n > 0, nil
}
