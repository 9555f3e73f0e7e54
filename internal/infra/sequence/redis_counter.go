package sequence

import (
	"context"
	"fmt"
	"log/slog"

	"car-auction/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auction:seq:"

// incrIfExists returns -1 when the counter has not been seeded yet.
var incrIfExistsScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('EXISTS', key) == 0 then
	return -1
end
return redis.call('INCR', key)
`)

// LastSequenceSource reports the highest sequence already stored for an auction.
type LastSequenceSource interface {
	LastSequence(ctx context.Context, auctionID uuid.UUID) (int64, error)
}

// RedisCounter shares per-auction sequences between processes. A missing key
// is seeded from the store, so losing Redis data does not reuse a sequence.
type RedisCounter struct {
	client *redis.Client
	source LastSequenceSource
	logger *slog.Logger
}

func NewRedisCounter(client *redis.Client, source LastSequenceSource, logger *slog.Logger) *RedisCounter {
	return &RedisCounter{client: client, source: source, logger: logger}
}

func (c *RedisCounter) Next(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	key := keyPrefix + auctionID.String()

	for range 2 {
		seq, err := incrIfExistsScript.Run(ctx, c.client, []string{key}).Int64()
		if err != nil {
			return 0, infra.WrapRepoErr(c.logger, infra.KindCacheFailure, "failed to increment bid sequence", err)
		}
		if seq > 0 {
			return seq, nil
		}
		if err := c.seed(ctx, key, auctionID); err != nil {
			return 0, err
		}
	}
	return 0, infra.WrapRepoErr(c.logger, infra.KindCacheFailure,
		fmt.Sprintf("bid sequence for auction %s vanished after seeding", auctionID), nil)
}

// seed writes the stored maximum unless another process got there first.
func (c *RedisCounter) seed(ctx context.Context, key string, auctionID uuid.UUID) error {
	last, err := c.source.LastSequence(ctx, auctionID)
	if err != nil {
		return err
	}
	if err := c.client.SetNX(ctx, key, last, 0).Err(); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindCacheFailure, "failed to seed bid sequence", err)
	}
	c.logger.Debug("Seeded bid sequence", "auction_id", auctionID, "last_sequence", last)
	return nil
}

// Forget drops the counter so the next call reseeds from the store.
func (c *RedisCounter) Forget(ctx context.Context, auctionID uuid.UUID) error {
	if err := c.client.Del(ctx, keyPrefix+auctionID.String()).Err(); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindCacheFailure, "failed to drop bid sequence", err)
	}
	return nil
}
