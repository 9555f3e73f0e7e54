//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra/memstore"
	"car-auction/internal/infra/simulator"
	"car-auction/internal/pkg/clock"
	"car-auction/internal/usecase/commands"
	"car-auction/internal/usecase/coordinator"
	"car-auction/internal/usecase/ordering"
	"car-auction/internal/usecase/shared"
	"car-auction/tests/common/builder"
	"car-auction/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store *memstore.Store
	sim   *simulator.Simulator
	coord *coordinator.Coordinator
	clock *clock.MockClock
	svc   commands.AuctionCommands
}

func newFixture(t *testing.T, opts commands.ReconcileOptions) *fixture {
	t.Helper()

	logger := testutil.DiscardLogger()
	clk := clock.NewMockClock(baseTime)
	store := memstore.New(logger)
	sim := simulator.New(store.PartitionEvents(), clk, logger, region.USEast)
	t.Cleanup(sim.Stop)
	coord := coordinator.New(sim, store.PartitionEvents(), clk, logger)

	f := &fixture{store: store, sim: sim, coord: coord, clock: clk}
	f.svc = f.newService(store, opts)
	return f
}

func (f *fixture) newService(uow shared.UnitOfWork, opts commands.ReconcileOptions) commands.AuctionCommands {
	logger := testutil.DiscardLogger()
	seq := ordering.NewSequenceAssigner(f.store.Auctions(), f.store.Bids(), ordering.NewStoreCounter(f.store.Bids()), logger)
	return commands.NewAuctionService(
		uow,
		f.store.Auctions(),
		f.store.Bids(),
		f.store.PartitionEvents(),
		f.store.Vehicles(),
		seq,
		f.coord,
		f.sim,
		opts,
		f.clock,
		logger,
	)
}

// racingUoW lets another writer bump the auction version right before the
// first transaction runs.
type racingUoW struct {
	shared.UnitOfWork
	store     *memstore.Store
	auctionID uuid.UUID
	now       time.Time
	fired     bool
}

func (u *racingUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if !u.fired {
		u.fired = true
		other, err := u.store.Auctions().Get(ctx, u.auctionID)
		if err != nil {
			return err
		}
		if err := other.Pause(u.now); err != nil {
			return err
		}
		if err := other.Resume(u.now); err != nil {
			return err
		}
		if _, err := u.store.Auctions().Update(ctx, other); err != nil {
			return err
		}
	}
	return u.UnitOfWork.Within(ctx, fn)
}

func (f *fixture) createVehicle(t *testing.T, r region.Region) uuid.UUID {
	t.Helper()
	v, err := builder.NewVehicleBuilder().WithRegion(r).With(func(b *builder.VehicleBuilder) {
		b.Now = f.clock.Now()
	}).BuildDomain()
	require.NoError(t, err)
	id, err := f.store.Vehicles().Create(context.Background(), v)
	require.NoError(t, err)
	return id
}

func (f *fixture) createAuction(t *testing.T, r region.Region, duration time.Duration) *auction.Auction {
	t.Helper()
	now := f.clock.Now()
	a, err := f.svc.CreateAuction(context.Background(), commands.CreateAuctionRequest{
		VehicleID:     f.createVehicle(t, r),
		Region:        r,
		StartingPrice: decimal.NewFromInt(10000),
		StartTime:     now,
		EndTime:       now.Add(duration),
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *auction.Auction {
	t.Helper()
	a, err := f.store.Auctions().GetWithBids(context.Background(), id)
	require.NoError(t, err)
	return a
}

func (f *fixture) storeQueuedBid(t *testing.T, auctionID uuid.UUID, origin region.Region, amount int64) *bid.Bid {
	t.Helper()
	ctx := context.Background()
	seq, err := f.store.Bids().NextSequence(ctx, auctionID)
	require.NoError(t, err)
	b := builder.NewBidBuilder().
		ForAuction(auctionID).
		WithOrigin(origin).
		WithAmount(amount).
		WithSequence(seq).
		WithCreatedAt(f.clock.Tick(time.Second)).
		AsQueued().
		BuildDomain()
	_, err = f.store.Bids().Create(ctx, b)
	require.NoError(t, err)
	return b
}

func inRegion(r region.Region) context.Context {
	return region.WithCaller(context.Background(), r)
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// =============================================================================
// CreateAuction
// =============================================================================

func TestAuctionService_CreateAuction(t *testing.T) {
	t.Run("正常系: 作成直後にActiveになりシーケンスが初期化される", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)

		assert.Equal(t, auction.StateActive, a.State())
		assert.True(t, a.CurrentPrice().Equal(amount(10000)))
		assert.Equal(t, a.Version(), a.OriginalVersion())

		last, err := f.store.Bids().LastSequence(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Zero(t, last)
	})

	t.Run("正常系: リージョン未指定なら車両のリージョンを使う", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		now := f.clock.Now()
		a, err := f.svc.CreateAuction(context.Background(), commands.CreateAuctionRequest{
			VehicleID:     f.createVehicle(t, region.EUWest),
			StartingPrice: amount(5000),
			StartTime:     now,
			EndTime:       now.Add(time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, region.EUWest, a.Region())
	})

	t.Run("正常系: パーティション中でも作成できる", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		_, err := f.sim.SimulatePartition(context.Background(), region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)

		a := f.createAuction(t, region.USEast, time.Hour)
		assert.Equal(t, auction.StateActive, a.State())
	})

	t.Run("異常系: 車両が存在しない", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		now := f.clock.Now()
		_, err := f.svc.CreateAuction(context.Background(), commands.CreateAuctionRequest{
			VehicleID:     uuid.New(),
			StartingPrice: amount(5000),
			StartTime:     now,
			EndTime:       now.Add(time.Hour),
		})
		assert.ErrorIs(t, err, commands.ErrVehicleNotFound)
	})

	t.Run("異常系: 終了時刻が開始時刻より前", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		now := f.clock.Now()
		_, err := f.svc.CreateAuction(context.Background(), commands.CreateAuctionRequest{
			VehicleID:     f.createVehicle(t, region.USEast),
			StartingPrice: amount(5000),
			StartTime:     now,
			EndTime:       now.Add(-time.Minute),
		})
		assert.ErrorIs(t, err, auction.ErrInvalidSchedule)
	})
}

// =============================================================================
// PlaceBid: CP path
// =============================================================================

func TestAuctionService_PlaceBid_Strong(t *testing.T) {
	t.Run("正常系: 入札が受理され価格が更新される", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		bidder := uuid.New()

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), bidder, amount(11000))
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, commands.OutcomePlaced, res.Outcome)
		assert.Equal(t, commands.MsgBidPlaced, res.Message)
		require.NotNil(t, res.Bid)
		assert.Equal(t, int64(1), res.Bid.Sequence())
		assert.True(t, res.Bid.IsAccepted())
		assert.False(t, res.Bid.IsDuringPartition())

		stored := f.reload(t, a.ID())
		assert.True(t, stored.CurrentPrice().Equal(amount(11000)))
		require.NotNil(t, stored.WinningBidderID())
		assert.Equal(t, bidder, *stored.WinningBidderID())
		assert.Equal(t, a.Version()+1, stored.Version())
		assert.True(t, stored.HasBid(res.Bid.ID()))
	})

	t.Run("異常系: 読み込み後に他の書き込みが入ると競合として拒否される", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		svc := f.newService(&racingUoW{
			UnitOfWork: f.store,
			store:      f.store,
			auctionID:  a.ID(),
			now:        f.clock.Now(),
		}, commands.ReconcileOptions{})

		res, err := svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(11000))
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.Equal(t, commands.OutcomeConflict, res.Outcome)
		assert.Equal(t, commands.MsgConcurrentModification, res.Message)
		require.NotNil(t, res.Bid)

		storedBid, err := f.store.Bids().Get(context.Background(), res.Bid.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusRejected, storedBid.Status())
		assert.Equal(t, commands.MsgConcurrentModification, *storedBid.RejectionReason())

		stored := f.reload(t, a.ID())
		assert.True(t, stored.CurrentPrice().Equal(amount(10000)))
		assert.Nil(t, stored.WinningBidderID())
		assert.Equal(t, a.Version()+2, stored.Version())
	})

	t.Run("正常系: 別リージョンからでも到達可能ならCPで処理される", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)

		res, err := f.svc.PlaceBid(inRegion(region.EUWest), a.ID(), uuid.New(), amount(10500))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomePlaced, res.Outcome)
		assert.Equal(t, region.EUWest, res.Bid.OriginRegion())
	})

	t.Run("正常系: シーケンスは入札ごとに連番になる", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)

		for i, v := range []int64{11000, 12000, 11500, 13000} {
			res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(v))
			require.NoError(t, err)
			require.NotNil(t, res.Bid)
			assert.Equal(t, int64(i+1), res.Bid.Sequence())
		}

		stored := f.reload(t, a.ID())
		assert.True(t, stored.CurrentPrice().Equal(amount(13000)))
	})

	t.Run("異常系: 現在価格以下の入札は拒否として記録される", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(10000))
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.Equal(t, commands.OutcomeRejected, res.Outcome)
		assert.Equal(t, "Bid amount must be higher than current price of 10000", res.Message)

		stored, err := f.store.Bids().Get(context.Background(), res.Bid.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusRejected, stored.Status())
		require.NotNil(t, stored.RejectionReason())
		assert.Equal(t, res.Message, *stored.RejectionReason())

		assert.True(t, f.reload(t, a.ID()).CurrentPrice().Equal(amount(10000)))
	})

	t.Run("異常系: オークションが存在しない", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})

		res, err := f.svc.PlaceBid(inRegion(region.USEast), uuid.New(), uuid.New(), amount(11000))
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, commands.OutcomeNotFound, res.Outcome)
		assert.Equal(t, commands.MsgAuctionNotFound, res.Message)
	})

	t.Run("異常系: 一時停止中のオークション", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := builder.NewAuctionBuilder().WithNow(f.clock.Now()).BuildPaused()
		_, err := f.store.Auctions().Create(context.Background(), a)
		require.NoError(t, err)

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(11000))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeNotActive, res.Outcome)
		assert.Equal(t, "Auction is not active. Current state: Paused", res.Message)
	})

	t.Run("異常系: 金額が0以下", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(0))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeRejected, res.Outcome)
		assert.Nil(t, res.Bid)

		bids, err := f.store.Bids().GetByAuction(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Empty(t, bids)
	})

	t.Run("境界値: 終了時刻を過ぎた入札でオークションが終了する", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Minute)
		f.clock.Add(2 * time.Minute)

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(11000))
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, commands.OutcomeAuctionEnded, res.Outcome)
		assert.Equal(t, commands.MsgAuctionEnded, res.Message)
		assert.Nil(t, res.Bid)
		assert.Equal(t, auction.StateEnded, f.reload(t, a.ID()).State())
	})
}

// =============================================================================
// PlaceBid: partitioned
// =============================================================================

func TestAuctionService_PlaceBid_Partitioned(t *testing.T) {
	t.Run("正常系: 分断された別リージョンからの入札はキューに入る", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		_, err := f.sim.SimulatePartition(context.Background(), region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)

		res, err := f.svc.PlaceBid(inRegion(region.EUWest), a.ID(), uuid.New(), amount(12000))
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, commands.OutcomeQueued, res.Outcome)
		assert.Equal(t, commands.MsgBidQueued, res.Message)
		require.NotNil(t, res.Bid)
		assert.True(t, res.Bid.IsDuringPartition())
		assert.Equal(t, bid.StatusPending, res.Bid.Status())

		stored := f.reload(t, a.ID())
		assert.Equal(t, auction.StatePaused, stored.State())
		assert.True(t, stored.CurrentPrice().Equal(amount(10000)), "queued bids never move the price")
		assert.False(t, stored.HasBid(res.Bid.ID()))

		e, err := f.coord.GetCurrentPartitionByAuctionRegion(context.Background(), region.USEast)
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, partition.StatusPartitioned, e.Status())
	})

	t.Run("正常系: インシデントが無ければ記録され検知ハンドラが他のオークションも停止する", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		target := f.createAuction(t, region.USEast, time.Hour)
		other := f.createAuction(t, region.USEast, time.Hour)

		_, err := f.sim.SimulatePartition(context.Background(), region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)
		// drop the simulator's incident so the queued bid has to announce one
		e, err := f.store.PartitionEvents().GetCurrentActiveForAuctionRegion(context.Background(), region.USEast)
		require.NoError(t, err)
		e.ResetToHealthy(f.clock.Now())
		require.NoError(t, f.store.PartitionEvents().Update(context.Background(), e))

		res, err := f.svc.PlaceBid(inRegion(region.EUWest), target.ID(), uuid.New(), amount(12000))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeQueued, res.Outcome)

		assert.Equal(t, auction.StatePaused, f.reload(t, other.ID()).State())
		created, err := f.coord.GetCurrentPartitionByAuctionRegion(context.Background(), region.USEast)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEqual(t, e.ID(), created.ID())
		assert.Equal(t, region.EUWest, created.OriginBidRegion())
	})

	t.Run("異常系: 分断中にホームリージョンからの入札は拒否され記録されない", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		_, err := f.sim.SimulatePartition(context.Background(), region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(12000))
		require.NoError(t, err)

		assert.False(t, res.Success)
		assert.Equal(t, commands.OutcomePartitioned, res.Outcome)
		assert.Equal(t, commands.MsgRegionPartitioned, res.Message)

		bids, err := f.store.Bids().GetByAuction(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Empty(t, bids)
		assert.Equal(t, auction.StateActive, f.reload(t, a.ID()).State())
	})

	t.Run("正常系: 呼び出し元リージョン未指定ならデフォルトリージョンを使う", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		require.NoError(t, f.sim.SetCurrentRegion(region.EUWest))
		_, err := f.sim.SimulatePartition(context.Background(), region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)

		res, err := f.svc.PlaceBid(context.Background(), a.ID(), uuid.New(), amount(12000))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeQueued, res.Outcome)
		assert.Equal(t, region.EUWest, res.Bid.OriginRegion())
	})
}

// =============================================================================
// Reconcile
// =============================================================================

func TestAuctionService_Reconcile(t *testing.T) {
	t.Run("正常系: キューの入札が無ければ再開するだけ", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		placed, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(11000))
		require.NoError(t, err)
		pauseStored(t, f, a.ID())

		res, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Zero(t, res.BidsReconciled)
		require.NotNil(t, res.WinnerID)
		assert.Equal(t, placed.Bid.BidderID(), *res.WinnerID)
		assert.True(t, res.WinningAmount.Equal(amount(11000)))
		assert.Equal(t, auction.StateActive, f.reload(t, a.ID()).State())
	})

	t.Run("正常系: 終了時刻を過ぎていれば終了させる", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Minute)
		pauseStored(t, f, a.ID())
		f.clock.Add(time.Hour)

		res, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Nil(t, res.WinnerID)
		assert.Nil(t, res.WinningAmount)
		assert.Equal(t, auction.StateEnded, f.reload(t, a.ID()).State())
	})

	t.Run("正常系: 高い方のキュー入札が最終的に勝つ", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		lead, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(11000))
		require.NoError(t, err)
		pauseStored(t, f, a.ID())

		eu := f.storeQueuedBid(t, a.ID(), region.EUWest, 13000)

		res, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, commands.MsgReconciled, res.Message)
		assert.Equal(t, 2, res.BidsReconciled)
		require.NotNil(t, res.WinnerID)
		assert.Equal(t, eu.BidderID(), *res.WinnerID)
		assert.True(t, res.WinningAmount.Equal(amount(13000)))

		stored := f.reload(t, a.ID())
		assert.Equal(t, auction.StateActive, stored.State())
		assert.True(t, stored.CurrentPrice().Equal(amount(13000)))

		euStored, err := f.store.Bids().Get(context.Background(), eu.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusAccepted, euStored.Status())

		leadStored, err := f.store.Bids().Get(context.Background(), lead.Bid.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusAccepted, leadStored.Status(), "stored CP bids keep their status")
	})

	t.Run("正常系: 同一リージョンでは最も早い入札だけが残る", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		pauseStored(t, f, a.ID())

		first := f.storeQueuedBid(t, a.ID(), region.EUWest, 10500)
		second := f.storeQueuedBid(t, a.ID(), region.EUWest, 11000)
		third := f.storeQueuedBid(t, a.ID(), region.EUWest, 12000)

		res, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)
		require.NotNil(t, res.WinnerID)
		assert.Equal(t, first.BidderID(), *res.WinnerID)
		assert.True(t, res.WinningAmount.Equal(amount(10500)))

		for _, b := range []*bid.Bid{second, third} {
			stored, err := f.store.Bids().Get(context.Background(), b.ID())
			require.NoError(t, err)
			assert.Equal(t, bid.StatusRejected, stored.Status())
			assert.Equal(t, bid.ReasonLostRegional, *stored.RejectionReason())
		}
	})

	t.Run("正常系: 同一リージョンのキュー入札は金額ではなく到着順で決まる", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		lead, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(12000))
		require.NoError(t, err)
		pauseStored(t, f, a.ID())

		early := f.storeQueuedBid(t, a.ID(), region.EUWest, 11000)
		late := f.storeQueuedBid(t, a.ID(), region.EUWest, 13000)

		res, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)
		require.NotNil(t, res.WinnerID)
		assert.Equal(t, lead.Bid.BidderID(), *res.WinnerID)
		assert.True(t, res.WinningAmount.Equal(amount(12000)))

		stored := f.reload(t, a.ID())
		assert.True(t, stored.CurrentPrice().Equal(amount(12000)))

		lateStored, err := f.store.Bids().Get(context.Background(), late.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusRejected, lateStored.Status())
		assert.Equal(t, bid.ReasonLostRegional, *lateStored.RejectionReason())

		earlyStored, err := f.store.Bids().Get(context.Background(), early.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusRejected, earlyStored.Status())
		assert.Equal(t, bid.ReasonLostGlobal, *earlyStored.RejectionReason())

		leadStored, err := f.store.Bids().Get(context.Background(), lead.Bid.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusAccepted, leadStored.Status())
	})

	t.Run("正常系: 開始価格以下の勝者は価格を下げずに拒否される", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		pauseStored(t, f, a.ID())

		low := f.storeQueuedBid(t, a.ID(), region.EUWest, 9000)

		_, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)

		stored := f.reload(t, a.ID())
		assert.True(t, stored.CurrentPrice().Equal(amount(10000)))
		assert.Nil(t, stored.WinningBidderID())

		lowStored, err := f.store.Bids().Get(context.Background(), low.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusRejected, lowStored.Status())
		assert.Equal(t, "Bid amount must be higher than current price of 10000", *lowStored.RejectionReason())
	})

	t.Run("正常系: 締切後にキューされた入札は対象外", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Minute)
		pauseStored(t, f, a.ID())
		f.clock.Add(2 * time.Minute)
		late := f.storeQueuedBid(t, a.ID(), region.EUWest, 20000)

		res, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)
		assert.Zero(t, res.BidsReconciled)
		assert.Nil(t, res.WinnerID)

		stored, err := f.store.Bids().Get(context.Background(), late.ID())
		require.NoError(t, err)
		assert.Equal(t, bid.StatusPending, stored.Status())
	})

	t.Run("異常系: 二回目の調整は一時停止中でないため失敗する", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		a := f.createAuction(t, region.USEast, time.Hour)
		pauseStored(t, f, a.ID())
		f.storeQueuedBid(t, a.ID(), region.EUWest, 12000)

		first, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)
		assert.True(t, first.Success)

		second, err := f.svc.Reconcile(context.Background(), a.ID())
		require.NoError(t, err)
		assert.False(t, second.Success)
		assert.Equal(t, "Auction is not paused. Current state: Active", second.Message)
	})

	t.Run("異常系: オークションが存在しない", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{})
		res, err := f.svc.Reconcile(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, commands.MsgAuctionNotFound, res.Message)
	})
}

// =============================================================================
// Partition heal
// =============================================================================

func TestAuctionService_OnPartitionHealed(t *testing.T) {
	t.Run("正常系: 修復時に自動で調整しインシデントを解決する", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{OnHeal: true, Concurrency: 2})
		a := f.createAuction(t, region.USEast, time.Hour)
		ctx := context.Background()

		e, err := f.sim.SimulatePartition(ctx, region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)
		queued, err := f.svc.PlaceBid(inRegion(region.EUWest), a.ID(), uuid.New(), amount(15000))
		require.NoError(t, err)
		require.Equal(t, commands.OutcomeQueued, queued.Outcome)

		require.NoError(t, f.sim.HealPartitionByRegion(ctx, region.USEast))

		stored := f.reload(t, a.ID())
		assert.Equal(t, auction.StateActive, stored.State())
		assert.True(t, stored.CurrentPrice().Equal(amount(15000)))

		history, err := f.store.PartitionEvents().GetHistory(ctx, baseTime)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, e.ID(), history[0].ID())
		assert.Equal(t, partition.StatusResolved, history[0].Status())
		assert.NotNil(t, history[0].EndTime())
	})

	t.Run("正常系: 自動調整が無効なら停止中のまま残る", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{OnHeal: false})
		a := f.createAuction(t, region.USEast, time.Hour)
		ctx := context.Background()

		_, err := f.sim.SimulatePartition(ctx, region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(inRegion(region.EUWest), a.ID(), uuid.New(), amount(15000))
		require.NoError(t, err)

		require.NoError(t, f.sim.HealPartitionByRegion(ctx, region.USEast))

		assert.Equal(t, auction.StatePaused, f.reload(t, a.ID()).State())
		pending, err := f.store.Auctions().GetNeedingReconciliationByRegion(ctx, region.USEast)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, a.ID(), pending[0].ID())

		active, err := f.coord.GetCurrentPartitionByAuctionRegion(ctx, region.USEast)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("正常系: 修復後は通常どおり入札できる", func(t *testing.T) {
		f := newFixture(t, commands.ReconcileOptions{OnHeal: true, Concurrency: 1})
		a := f.createAuction(t, region.USEast, time.Hour)
		ctx := context.Background()

		_, err := f.sim.SimulatePartition(ctx, region.EUWest, region.USEast, time.Hour)
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(inRegion(region.EUWest), a.ID(), uuid.New(), amount(12000))
		require.NoError(t, err)
		require.NoError(t, f.sim.HealPartition(ctx))

		res, err := f.svc.PlaceBid(inRegion(region.USEast), a.ID(), uuid.New(), amount(12500))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomePlaced, res.Outcome)
		assert.Equal(t, int64(2), res.Bid.Sequence())
	})
}

func pauseStored(t *testing.T, f *fixture, id uuid.UUID) {
	t.Helper()
	a := f.reload(t, id)
	require.NoError(t, a.Pause(f.clock.Now()))
	ok, err := f.store.Auctions().Update(context.Background(), a)
	require.NoError(t, err)
	require.True(t, ok)
}
