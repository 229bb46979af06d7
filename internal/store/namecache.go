package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/openclass/classroom/internal/core"
)

// CachedUserSource memoizes display-name lookups so a burst of viewers
// joining the same class does not hammer the users collection.
// Only successful lookups are cached.
type CachedUserSource struct {
	inner core.UserSource
	cache *gocache.Cache
}

func NewCachedUserSource(inner core.UserSource, ttl time.Duration) *CachedUserSource {
	return &CachedUserSource{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *CachedUserSource) GetDisplayName(ctx context.Context, userID string) (string, error) {
	if v, ok := s.cache.Get(userID); ok {
		return v.(string), nil
	}
	name, err := s.inner.GetDisplayName(ctx, userID)
	if err != nil {
		return "", err
	}
	s.cache.SetDefault(userID, name)
	return name, nil
}
