//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra/memstore"
	"car-auction/internal/usecase/ordering"
	"car-auction/internal/usecase/queries"
	"car-auction/tests/common/builder"
	"car-auction/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auctionFixture struct {
	store *memstore.Store
	q     queries.AuctionQueries
	a     *auction.Auction
}

// newAuctionFixture stores an active USEast auction holding one accepted
// bid, one rejected bid and one bid still queued from EUWest.
func newAuctionFixture(t *testing.T) (*auctionFixture, []*bid.Bid) {
	t.Helper()
	ctx := context.Background()
	logger := testutil.DiscardLogger()
	store := memstore.New(logger)
	seq := ordering.NewSequenceAssigner(store.Auctions(), store.Bids(), ordering.NewStoreCounter(store.Bids()), logger)

	now := time.Now().UTC()
	a := builder.NewAuctionBuilder().WithNow(now).BuildActive()
	_, err := store.Auctions().Create(ctx, a)
	require.NoError(t, err)
	require.NoError(t, store.Bids().InitSequence(ctx, a.ID()))

	reason := "Bid amount must be higher than current price of 10000"
	bids := []*bid.Bid{
		builder.NewBidBuilder().ForAuction(a.ID()).WithAmount(11000).WithSequence(1).WithCreatedAt(now.Add(time.Second)).AsAccepted().BuildDomain(),
		builder.NewBidBuilder().ForAuction(a.ID()).WithAmount(9000).WithSequence(3).WithCreatedAt(now.Add(3 * time.Second)).With(func(b *builder.BidBuilder) {
			b.RejectionReason = &reason
		}).BuildDomain(),
		builder.NewBidBuilder().ForAuction(a.ID()).WithOrigin(region.EUWest).WithAmount(12000).WithSequence(2).WithCreatedAt(now.Add(2 * time.Second)).AsQueued().BuildDomain(),
	}
	for _, b := range bids {
		_, err := store.Bids().Create(ctx, b)
		require.NoError(t, err)
	}

	return &auctionFixture{
		store: store,
		q:     queries.NewAuctionQueries(store.Auctions(), store.Bids(), seq),
		a:     a,
	}, bids
}

func TestAuctionQueries_GetAuction(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: strongは入札履歴を含む", func(t *testing.T) {
		f, bids := newAuctionFixture(t)

		v, err := f.q.GetAuction(ctx, f.a.ID(), auction.ConsistencyStrong)
		require.NoError(t, err)
		assert.Equal(t, auction.ConsistencyStrong, v.Consistency)
		require.Len(t, v.Bids, 2, "queued bids are not part of the auction history")
		assert.Equal(t, bids[0].ID(), v.Bids[0].ID)
		assert.True(t, v.Bids[0].Accepted)
		assert.False(t, v.Bids[1].Accepted)
	})

	t.Run("正常系: eventualはサマリのみ", func(t *testing.T) {
		f, _ := newAuctionFixture(t)

		v, err := f.q.GetAuction(ctx, f.a.ID(), auction.ConsistencyEventual)
		require.NoError(t, err)
		assert.Equal(t, auction.StateActive, v.State)
		assert.Empty(t, v.Bids)
	})

	t.Run("正常系: 未指定はstrong扱い", func(t *testing.T) {
		f, _ := newAuctionFixture(t)

		v, err := f.q.GetAuction(ctx, f.a.ID(), "")
		require.NoError(t, err)
		assert.Equal(t, auction.ConsistencyStrong, v.Consistency)
	})

	t.Run("異常系: 不正な整合性レベル", func(t *testing.T) {
		f, _ := newAuctionFixture(t)
		_, err := f.q.GetAuction(ctx, f.a.ID(), "linearizable")
		assert.ErrorIs(t, err, queries.ErrInvalidConsistencyLevel)
	})

	t.Run("異常系: 存在しない", func(t *testing.T) {
		f, _ := newAuctionFixture(t)
		_, err := f.q.GetAuction(ctx, uuid.New(), auction.ConsistencyEventual)
		assert.ErrorIs(t, err, queries.ErrAuctionNotFound)
	})
}

func TestAuctionQueries_ListBids(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: シーケンス順に全ての入札を返す", func(t *testing.T) {
		f, bids := newAuctionFixture(t)

		views, err := f.q.ListBids(ctx, f.a.ID(), nil)
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{views[0].Sequence, views[1].Sequence, views[2].Sequence})
		assert.Equal(t, bids[2].ID(), views[1].ID)
		assert.Equal(t, bid.StatusPending, views[1].Status)
		assert.True(t, views[1].IsDuringPartition)
		assert.Equal(t, bid.StatusRejected, views[2].Status)
	})

	t.Run("正常系: since以降に絞り込む", func(t *testing.T) {
		f, bids := newAuctionFixture(t)

		since := bids[2].CreatedAt()
		views, err := f.q.ListBids(ctx, f.a.ID(), &since)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, int64(2), views[0].Sequence)
	})

	t.Run("異常系: 存在しないオークション", func(t *testing.T) {
		f, _ := newAuctionFixture(t)
		_, err := f.q.ListBids(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, queries.ErrAuctionNotFound)
	})
}

func TestAuctionQueries_ReconciliationCandidates(t *testing.T) {
	ctx := context.Background()
	f, _ := newAuctionFixture(t)

	empty, err := f.q.ReconciliationCandidates(ctx, region.USEast)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a, err := f.store.Auctions().Get(ctx, f.a.ID())
	require.NoError(t, err)
	require.NoError(t, a.Pause(time.Now()))
	ok, err := f.store.Auctions().Update(ctx, a)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := f.q.ReconciliationCandidates(ctx, region.USEast)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.a.ID(), got[0].AuctionID)
	assert.Equal(t, 1, got[0].QueuedBids)

	_, err = f.q.ReconciliationCandidates(ctx, region.Region("Moon"))
	assert.ErrorIs(t, err, region.ErrUnknownRegion)
}
