// Package cache stores rendered engine results keyed by a hash of the request.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is the result cache used by the HTTP layer.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key derives a cache key from a namespace and the raw request payload.
func Key(namespace string, payload []byte) string {
	return "finassess:" + namespace + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16)
}
