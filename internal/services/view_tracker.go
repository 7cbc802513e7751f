package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewDedupTTL = 24 * time.Hour

// ViewTracker decides whether a viewer should bump a story's view counter.
// Each viewer counts at most once per day per story.
type ViewTracker interface {
	FirstView(ctx context.Context, storyID int, viewer string) bool
}

type RedisViewTracker struct {
	client *redis.Client
}

func NewRedisViewTracker(client *redis.Client) *RedisViewTracker {
	return &RedisViewTracker{client: client}
}

func (t *RedisViewTracker) FirstView(ctx context.Context, storyID int, viewer string) bool {
	key := fmt.Sprintf("viewed:story:%d:%s", storyID, viewer)
	ok, err := t.client.SetNX(ctx, key, 1, viewDedupTTL).Result()
	if err != nil {
		// If Redis is down we count the view rather than lose it.
		return true
	}
	return ok
}

// AlwaysCountViews is the fallback when Redis is not configured.
type AlwaysCountViews struct{}

func (AlwaysCountViews) FirstView(ctx context.Context, storyID int, viewer string) bool {
	return true
}
