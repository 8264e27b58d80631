package booking

import (
	"context"
	"encoding/json"
	"time"

	"courtside/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const snapshotPrefix = "snapshot:"

// CachedCourtAPI serves booking snapshots from Redis for a short TTL to keep
// date-flipping cheap. The cache key is the full (group, date) pair, so a
// stale entry can never answer for a different scope. Confirmation calls are
// never cached.
type CachedCourtAPI struct {
	API    CourtAPI
	Cache  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func (c *CachedCourtAPI) GetCourtGroup(ctx context.Context, courtGroupID string) (*models.CourtGroup, error) {
	return c.API.GetCourtGroup(ctx, courtGroupID)
}

func (c *CachedCourtAPI) FetchBookingData(ctx context.Context, courtGroupID, date string) (*models.GroupSnapshot, error) {
	date = models.NormalizeDate(date)
	key := snapshotPrefix + courtGroupID + ":" + date

	if data, err := c.Cache.Get(ctx, key).Result(); err == nil {
		var snapshot models.GroupSnapshot
		if err := json.Unmarshal([]byte(data), &snapshot); err == nil {
			return &snapshot, nil
		}
		// Unreadable entry; fall through to a fresh fetch.
		c.Cache.Del(ctx, key)
	}

	snapshot, err := c.API.FetchBookingData(ctx, courtGroupID, date)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(snapshot); err == nil {
		if err := c.Cache.Set(ctx, key, data, c.TTL).Err(); err != nil {
			c.Logger.Warn("failed to cache booking snapshot", zap.String("key", key), zap.Error(err))
		}
	}
	return snapshot, nil
}

func (c *CachedCourtAPI) GetBookingConfirmation(ctx context.Context, req models.ConfirmationRequest) (*models.ConfirmationResult, error) {
	return c.API.GetBookingConfirmation(ctx, req)
}
