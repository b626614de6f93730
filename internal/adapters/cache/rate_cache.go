package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
)

// RistrettoRateCache keeps upstream results in memory until their TTL expires.
type RistrettoRateCache struct {
	cache  *ristretto.Cache
	onDrop func(key string)
}

type Option func(*RistrettoRateCache)

// WithDropObserver is called for every write ristretto refuses or drops.
func WithDropObserver(observer func(key string)) Option {
	return func(c *RistrettoRateCache) { c.onDrop = observer }
}

func NewRateCache(maxItems int64, opts ...Option) (*RistrettoRateCache, error) {
	if maxItems <= 0 {
		maxItems = 10_000
	}
	// cost is counted in entries, not bytes
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	rc := &RistrettoRateCache{cache: c}
	for _, opt := range opts {
		opt(rc)
	}
	return rc, nil
}

func (c *RistrettoRateCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set stores the value and waits for the write buffer to flush,
// so the entry is visible to the next Get.
func (c *RistrettoRateCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if !c.cache.SetWithTTL(key, value, 1, ttl) {
		logrus.WithField("key", key).Debug("Rate cache write dropped")
		if c.onDrop != nil {
			c.onDrop(key)
		}
		return
	}
	c.cache.Wait()
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }
