//go:build unit

package sequence_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"car-auction/internal/infra/sequence"
	"car-auction/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	last  int64
	calls int
	mu    sync.Mutex
}

func (s *fixedSource) LastSequence(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.last, nil
}

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCounter_Next(t *testing.T) {
	t.Run("正常系: 未初期化のカウンタはストアの最大値から続く", func(t *testing.T) {
		client := getRedisClient(t)
		ctx := context.Background()
		source := &fixedSource{last: 7}
		counter := sequence.NewRedisCounter(client, source, testutil.DiscardLogger())
		auctionID := uuid.New()
		t.Cleanup(func() { _ = counter.Forget(ctx, auctionID) })

		first, err := counter.Next(ctx, auctionID)
		require.NoError(t, err)
		second, err := counter.Next(ctx, auctionID)
		require.NoError(t, err)

		assert.Equal(t, int64(8), first)
		assert.Equal(t, int64(9), second)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("正常系: 並行に採番しても重複も欠番もない", func(t *testing.T) {
		client := getRedisClient(t)
		ctx := context.Background()
		counter := sequence.NewRedisCounter(client, &fixedSource{}, testutil.DiscardLogger())
		auctionID := uuid.New()
		t.Cleanup(func() { _ = counter.Forget(ctx, auctionID) })

		const n = 50
		results := make(chan int64, n)
		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				seq, err := counter.Next(ctx, auctionID)
				assert.NoError(t, err)
				results <- seq
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int64]bool, n)
		for seq := range results {
			assert.False(t, seen[seq], "duplicate sequence %d", seq)
			seen[seq] = true
		}
		for i := int64(1); i <= n; i++ {
			assert.True(t, seen[i], "missing sequence %d", i)
		}
	})

	t.Run("正常系: Forget後はストアから再シードする", func(t *testing.T) {
		client := getRedisClient(t)
		ctx := context.Background()
		source := &fixedSource{last: 3}
		counter := sequence.NewRedisCounter(client, source, testutil.DiscardLogger())
		auctionID := uuid.New()
		t.Cleanup(func() { _ = counter.Forget(ctx, auctionID) })

		_, err := counter.Next(ctx, auctionID)
		require.NoError(t, err)
		require.NoError(t, counter.Forget(ctx, auctionID))
		source.last = 10

		seq, err := counter.Next(ctx, auctionID)
		require.NoError(t, err)
		assert.Equal(t, int64(11), seq)
		assert.Equal(t, 2, source.calls)
	})
}
