package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estatehub/listing-service/internal/user"
)

const summaryTTL = 1 * time.Hour

// UserSummaryCache is a read-through Redis cache in front of the user
// repository's summary lookups. Owner summaries sit on every listing read, so
// they are by far the hottest query in the service.
type UserSummaryCache struct {
	client *redis.Client
	next   user.SummaryDirectory
}

func NewUserSummaryCache(addr string, next user.SummaryDirectory) (*UserSummaryCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &UserSummaryCache{client: client, next: next}, nil
}

func (c *UserSummaryCache) SummaryByID(ctx context.Context, id string) (*user.Summary, error) {
	// Any cache failure, including Redis being down, falls through to the
	// repository.
	data, err := c.client.Get(ctx, summaryKey(id)).Bytes()
	if err == nil {
		var summary user.Summary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	summary, err := c.next.SummaryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(summary); err == nil {
		c.client.Set(ctx, summaryKey(id), data, summaryTTL)
	}
	return summary, nil
}

// Invalidate drops the cached summary after a profile update.
func (c *UserSummaryCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, summaryKey(id)).Err()
}

func summaryKey(id string) string {
	return "user_summary:" + id
}
