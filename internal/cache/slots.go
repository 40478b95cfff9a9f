package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const slotTTL = 60 * time.Second

// SlotCache keeps generated availability per (worker, date) in redis.
// A nil client disables it; every method degrades to a miss or no-op,
// so the booking core never depends on redis being up.
type SlotCache struct {
	rdb *redis.Client
}

func NewSlotCache(rdb *redis.Client) *SlotCache {
	return &SlotCache{rdb: rdb}
}

func key(workerID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", workerID, date)
}

func (c *SlotCache) Get(ctx context.Context, workerID uint, date string) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(workerID, date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, workerID uint, date string, slots []string) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(workerID, date), raw, slotTTL)
}

// Invalidate drops the cached grid after a booking mutation touches
// the (worker, date) pair.
func (c *SlotCache) Invalidate(ctx context.Context, workerID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(workerID, date))
}
