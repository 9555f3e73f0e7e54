//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra/memstore"
	"car-auction/tests/common/builder"
	"car-auction/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func TestAuctionStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 読み込んだバージョンのままなら更新できる", func(t *testing.T) {
		store := memstore.New(testutil.DiscardLogger())
		a := builder.NewAuctionBuilder().WithNow(baseTime).WithSchedule(baseTime, baseTime.Add(time.Hour)).BuildActive()
		_, err := store.Auctions().Create(ctx, a)
		require.NoError(t, err)

		loaded, err := store.Auctions().Get(ctx, a.ID())
		require.NoError(t, err)
		require.NoError(t, loaded.Pause(baseTime.Add(time.Minute)))

		ok, err := store.Auctions().Update(ctx, loaded)
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := store.Auctions().Get(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, a.Version()+1, stored.Version())
	})

	t.Run("異常系: 古いバージョンからの更新は拒否され保存内容は変わらない", func(t *testing.T) {
		store := memstore.New(testutil.DiscardLogger())
		a := builder.NewAuctionBuilder().WithNow(baseTime).WithSchedule(baseTime, baseTime.Add(time.Hour)).BuildActive()
		_, err := store.Auctions().Create(ctx, a)
		require.NoError(t, err)

		winner, err := store.Auctions().Get(ctx, a.ID())
		require.NoError(t, err)
		stale, err := store.Auctions().Get(ctx, a.ID())
		require.NoError(t, err)

		require.NoError(t, winner.Pause(baseTime.Add(time.Minute)))
		ok, err := store.Auctions().Update(ctx, winner)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, stale.Cancel(baseTime.Add(2*time.Minute)))
		ok, err = store.Auctions().Update(ctx, stale)
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := store.Auctions().Get(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, winner.State(), stored.State())
		assert.Equal(t, winner.Version(), stored.Version())
	})
}

func TestAuctionStore_GetWithBids(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 保留中のキュー入札は入札履歴に含まれない", func(t *testing.T) {
		store := memstore.New(testutil.DiscardLogger())
		a := builder.NewAuctionBuilder().WithNow(baseTime).WithSchedule(baseTime, baseTime.Add(time.Hour)).BuildActive()
		_, err := store.Auctions().Create(ctx, a)
		require.NoError(t, err)

		accepted := builder.NewBidBuilder().ForAuction(a.ID()).WithAmount(11000).WithSequence(1).
			WithCreatedAt(baseTime.Add(time.Second)).AsAccepted().BuildDomain()
		queued := builder.NewBidBuilder().ForAuction(a.ID()).WithAmount(12000).WithSequence(2).
			WithOrigin(region.EUWest).WithCreatedAt(baseTime.Add(2 * time.Second)).AsQueued().BuildDomain()
		for _, b := range []*bid.Bid{accepted, queued} {
			_, err := store.Bids().Create(ctx, b)
			require.NoError(t, err)
		}

		loaded, err := store.Auctions().GetWithBids(ctx, a.ID())
		require.NoError(t, err)
		require.Len(t, loaded.Bids(), 1)
		assert.Equal(t, accepted.ID(), loaded.Bids()[0].ID)
		assert.True(t, loaded.HasBid(accepted.ID()))
		assert.False(t, loaded.HasBid(queued.ID()))
	})
}
