package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/freelance-directory/internal/domain"
	"github.com/spec-kit/freelance-directory/internal/events"
	"github.com/spec-kit/freelance-directory/internal/persistence"
)

// DirectoryCache keeps the most-liked projection in Redis.
type DirectoryCache struct {
	redis *persistence.Redis
	ttl   time.Duration
}

// NewDirectoryCache constructs the cache. A zero ttl disables caching.
func NewDirectoryCache(r *persistence.Redis, ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{redis: r, ttl: ttl}
}

func (c *DirectoryCache) mostLikedKey() string {
	return c.redis.Key("users", "most_liked")
}

// GetMostLiked returns the cached projection; ok is false on a miss.
func (c *DirectoryCache) GetMostLiked(ctx context.Context) ([]domain.User, bool, error) {
	if c.ttl <= 0 {
		return nil, false, nil
	}
	raw, err := c.redis.Client.Get(ctx, c.mostLikedKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, false, err
	}
	return users, true, nil
}

// SetMostLiked stores the projection without credentials.
func (c *DirectoryCache) SetMostLiked(ctx context.Context, users []domain.User) error {
	if c.ttl <= 0 {
		return nil
	}
	stripped := make([]domain.User, len(users))
	for i, u := range users {
		u.PasswordHash = ""
		stripped[i] = u
	}
	raw, err := json.Marshal(stripped)
	if err != nil {
		return err
	}
	return c.redis.Client.Set(ctx, c.mostLikedKey(), raw, c.ttl).Err()
}

// Invalidate drops the projection.
func (c *DirectoryCache) Invalidate(ctx context.Context) error {
	if c.ttl <= 0 {
		return nil
	}
	return c.redis.Client.Del(ctx, c.mostLikedKey()).Err()
}

// RegisterHandlers invalidates the projection whenever its membership or order may change.
func (c *DirectoryCache) RegisterHandlers(dispatcher events.Dispatcher) {
	invalidate := func(ctx context.Context, _ events.Event) error {
		return c.Invalidate(ctx)
	}
	dispatcher.Subscribe(events.EventUserRegistered, invalidate)
	dispatcher.Subscribe(events.EventUserActivated, invalidate)
	dispatcher.Subscribe(events.EventProfileLiked, invalidate)
	dispatcher.Subscribe(events.EventProfileUpdated, invalidate)
}
