package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ContextCache holds assembled visitor context blocks for a short window so
// rapid back-to-back turns in the same conversation skip the database reads.
// Any write that changes what the block would contain must call Invalidate.
type ContextCache struct {
	cache *cache.Cache
}

func NewContextCache(ttl time.Duration) *ContextCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	c := cache.New(ttl, 10*time.Minute)
	return &ContextCache{
		cache: c,
	}
}

func (r *ContextCache) Save(visitorID string, block string) {
	r.cache.Set(visitorID, block, cache.DefaultExpiration)
}

func (r *ContextCache) Get(visitorID string) (string, bool) {
	if x, found := r.cache.Get(visitorID); found {
		return x.(string), true
	}
	return "", false
}

func (r *ContextCache) Invalidate(visitorID string) {
	r.cache.Delete(visitorID)
}
