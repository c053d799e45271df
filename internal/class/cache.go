package class

import (
	"context"
	"encoding/json"
	"time"

	"github.com/javaqber/wodup-backend/internal/logger"
	"github.com/javaqber/wodup-backend/internal/timeutil"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 30 * time.Second

// Cache keeps the upcoming/today listings in Redis for a short TTL. Misses
// and Redis failures fall through to the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func upcomingKey(day time.Time) string {
	return "classes:upcoming:" + day.Format(timeutil.DateLayout)
}

func todayKey(day time.Time) string {
	return "classes:today:" + day.Format(timeutil.DateLayout)
}

func (c *Cache) getList(ctx context.Context, key string) ([]Class, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var classes []Class
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, false
	}

	return classes, true
}

func (c *Cache) setList(ctx context.Context, key string, classes []Class) {
	data, err := json.Marshal(classes)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Debugf("class cache set failed for %s: %v", key, err)
	}
}

func (c *Cache) GetUpcoming(ctx context.Context, day time.Time) ([]Class, bool) {
	return c.getList(ctx, upcomingKey(day))
}

func (c *Cache) SetUpcoming(ctx context.Context, day time.Time, classes []Class) {
	c.setList(ctx, upcomingKey(day), classes)
}

func (c *Cache) GetToday(ctx context.Context, day time.Time) ([]Class, bool) {
	return c.getList(ctx, todayKey(day))
}

func (c *Cache) SetToday(ctx context.Context, day time.Time, classes []Class) {
	c.setList(ctx, todayKey(day), classes)
}

// Invalidate drops the listings for the given day. Mutations call this so
// stale listings never outlive a schedule change by more than the TTL.
func (c *Cache) Invalidate(ctx context.Context, day time.Time) {
	if err := c.client.Del(ctx, upcomingKey(day), todayKey(day)).Err(); err != nil {
		logger.Debugf("class cache invalidate failed: %v", err)
	}
}
