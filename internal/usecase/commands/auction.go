package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"
	"car-auction/internal/pkg/clock"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/coordinator"
	"car-auction/internal/usecase/ordering"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAuctionNotFound        = errs.ErrAuctionNotFound
	ErrVehicleNotFound        = errs.ErrVehicleNotFound
	ErrConcurrentModification = errs.ErrConcurrencyConflict
)

const (
	MsgAuctionNotFound        = "Auction not found"
	MsgAuctionEnded           = "Auction ended successfully"
	MsgBidQueued              = "Bid queued for reconciliation after partition heals"
	MsgRegionPartitioned      = "Auction region is partitioned. Cannot place bid at this time."
	MsgBidTooLow              = "Bid amount must be higher than current price"
	MsgConcurrentModification = "Auction was modified concurrently"
	MsgBidPlaced              = "Bid placed successfully"
	MsgMissingBidder          = "Bidder is required"
	MsgNonPositiveAmount      = "Bid amount must be positive"

	MsgReconciled       = "Reconciliation completed"
	MsgNothingQueued    = "No partition bids to reconcile"
	maxPauseAttempts    = 3
	defaultReconcileCap = 4
)

type BidOutcome string

const (
	OutcomePlaced       BidOutcome = "Placed"
	OutcomeQueued       BidOutcome = "Queued"
	OutcomeAuctionEnded BidOutcome = "AuctionEnded"
	OutcomeNotFound     BidOutcome = "NotFound"
	OutcomeNotActive    BidOutcome = "NotActive"
	OutcomePartitioned  BidOutcome = "Partitioned"
	OutcomeRejected     BidOutcome = "Rejected"
	OutcomeConflict     BidOutcome = "Conflict"
)

// BidResult is what PlaceBid decided. Business rejections are results, not errors.
type BidResult struct {
	Success bool
	Outcome BidOutcome
	Message string
	Bid     *bid.Bid
}

type ReconciliationResult struct {
	Success        bool
	Message        string
	BidsReconciled int
	WinnerID       *uuid.UUID
	WinningAmount  *decimal.Decimal
}

type CreateAuctionRequest struct {
	VehicleID     uuid.UUID
	Region        region.Region
	StartingPrice decimal.Decimal
	ReservePrice  *decimal.Decimal
	StartTime     time.Time
	EndTime       time.Time
}

type ReconcileOptions struct {
	OnHeal      bool
	Concurrency int
}

type RegionCoordinator interface {
	IsRegionReachable(ctx context.Context, r region.Region) bool
	ExecuteInRegion(ctx context.Context, r region.Region, op func(ctx context.Context) error) error
	AddPartition(ctx context.Context, origin, auctionRegion region.Region) error
	OnPartitionDetected(h partition.DetectedHandler)
	OnPartitionHealed(h partition.HealedHandler)
}

// CallerRegion resolves the region a request is issued from.
type CallerRegion interface {
	GetCurrentRegion(ctx context.Context) region.Region
}

type AuctionCommands interface {
	CreateAuction(ctx context.Context, req CreateAuctionRequest) (*auction.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID uuid.UUID, amount decimal.Decimal) (*BidResult, error)
	Reconcile(ctx context.Context, auctionID uuid.UUID) (*ReconciliationResult, error)
}

type auctionService struct {
	uow      shared.UnitOfWork
	auctions shared.AuctionRepository
	bids     shared.BidRepository
	events   shared.PartitionEventRepository
	vehicles shared.VehicleRepository
	ordering *ordering.SequenceAssigner
	coord    RegionCoordinator
	caller   CallerRegion
	resolver *bid.ConflictResolver
	opts     ReconcileOptions
	clock    clock.Clock
	logger   *slog.Logger
}

// NewAuctionService subscribes the service to the coordinator's partition
// notifications.
func NewAuctionService(
	uow shared.UnitOfWork,
	auctions shared.AuctionRepository,
	bids shared.BidRepository,
	events shared.PartitionEventRepository,
	vehicles shared.VehicleRepository,
	seq *ordering.SequenceAssigner,
	coord RegionCoordinator,
	caller CallerRegion,
	opts ReconcileOptions,
	clk clock.Clock,
	logger *slog.Logger,
) AuctionCommands {
	if opts.Concurrency < 1 {
		opts.Concurrency = defaultReconcileCap
	}
	s := &auctionService{
		uow:      uow,
		auctions: auctions,
		bids:     bids,
		events:   events,
		vehicles: vehicles,
		ordering: seq,
		coord:    coord,
		caller:   caller,
		resolver: bid.NewConflictResolver(),
		opts:     opts,
		clock:    clk,
		logger:   logger,
	}
	coord.OnPartitionDetected(s.handlePartitionDetected)
	coord.OnPartitionHealed(s.handlePartitionHealed)
	return s
}

// CreateAuction never consults partition state.
func (s *auctionService) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*auction.Auction, error) {
	v, err := s.vehicles.Get(ctx, req.VehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	home := req.Region
	if home == "" {
		home = v.Region()
	}

	now := s.clock.Now()
	a, err := auction.NewAuction(req.VehicleID, home, req.StartingPrice, req.ReservePrice, req.StartTime, req.EndTime, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := a.Start(now); err != nil {
		return nil, err
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Auctions().Create(ctx, a); err != nil {
			return err
		}
		return tx.Bids().InitSequence(ctx, a.ID())
	})
	if err != nil {
		return nil, err
	}
	a.Persisted()

	s.logger.Info("Auction created",
		"auction_id", a.ID(),
		"region", a.Region(),
		"starting_price", a.StartingPrice().String())
	return a, nil
}

func (s *auctionService) PlaceBid(ctx context.Context, auctionID, bidderID uuid.UUID, amount decimal.Decimal) (*BidResult, error) {
	a, err := s.auctions.GetWithBids(ctx, auctionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &BidResult{Outcome: OutcomeNotFound, Message: MsgAuctionNotFound}, nil
		}
		return nil, err
	}
	if a.State() != auction.StateActive {
		return &BidResult{
			Outcome: OutcomeNotActive,
			Message: fmt.Sprintf("Auction is not active. Current state: %s", a.State()),
		}, nil
	}

	now := s.clock.Now()
	if a.IsPastDue(now) {
		return s.endAuction(ctx, a, now)
	}

	switch {
	case bidderID == uuid.Nil:
		return &BidResult{Outcome: OutcomeRejected, Message: MsgMissingBidder}, nil
	case !amount.IsPositive():
		return &BidResult{Outcome: OutcomeRejected, Message: MsgNonPositiveAmount}, nil
	}

	caller := s.caller.GetCurrentRegion(ctx)
	if !s.coord.IsRegionReachable(ctx, a.Region()) {
		if caller != a.Region() {
			return s.queueBid(ctx, a, bidderID, amount, caller, now)
		}
		return &BidResult{Outcome: OutcomePartitioned, Message: MsgRegionPartitioned}, nil
	}

	var result *BidResult
	err = s.coord.ExecuteInRegion(ctx, a.Region(), func(ctx context.Context) error {
		var perr error
		result, perr = s.placeStrong(ctx, a, bidderID, amount, caller, now)
		return perr
	})
	if errors.Is(err, coordinator.ErrRegionUnreachable) {
		return &BidResult{Outcome: OutcomePartitioned, Message: MsgRegionPartitioned}, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *auctionService) endAuction(ctx context.Context, a *auction.Auction, now time.Time) (*BidResult, error) {
	if err := a.End(now); err != nil {
		return nil, err
	}
	ok, err := s.auctions.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &BidResult{Outcome: OutcomeConflict, Message: MsgConcurrentModification}, nil
	}
	a.Persisted()
	s.logger.Info("Auction ended", "auction_id", a.ID(), "final_price", a.CurrentPrice().String())
	return &BidResult{Success: true, Outcome: OutcomeAuctionEnded, Message: MsgAuctionEnded}, nil
}

// queueBid accepts a bid from a region cut off from the auction's home. The
// bid is kept out of the price ratchet until reconciliation.
func (s *auctionService) queueBid(
	ctx context.Context,
	a *auction.Auction,
	bidderID uuid.UUID,
	amount decimal.Decimal,
	caller region.Region,
	now time.Time,
) (*BidResult, error) {
	seq, err := s.ordering.NextSequence(ctx, a.ID())
	if err != nil {
		return nil, err
	}
	b, err := bid.NewBid(a.ID(), bidderID, amount, caller, seq, now)
	if err != nil {
		return nil, err
	}
	b.MarkAsDuringPartition()
	if _, err := s.bids.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := s.pause(ctx, a); err != nil {
		return nil, err
	}
	if err := s.coord.AddPartition(ctx, caller, a.Region()); err != nil {
		return nil, err
	}

	s.logger.Info("Bid queued during partition",
		"auction_id", a.ID(),
		"bid_id", b.ID(),
		"sequence", b.Sequence(),
		"caller_region", caller,
		"auction_region", a.Region())
	return &BidResult{Success: true, Outcome: OutcomeQueued, Message: MsgBidQueued, Bid: b}, nil
}

func (s *auctionService) placeStrong(
	ctx context.Context,
	a *auction.Auction,
	bidderID uuid.UUID,
	amount decimal.Decimal,
	caller region.Region,
	now time.Time,
) (*BidResult, error) {
	seq, err := s.ordering.NextSequence(ctx, a.ID())
	if err != nil {
		return nil, err
	}
	b, err := bid.NewBid(a.ID(), bidderID, amount, caller, seq, now)
	if err != nil {
		return nil, err
	}

	v, err := s.ordering.ValidateBidOrder(ctx, a.ID(), b)
	if err != nil {
		return nil, err
	}
	if !v.IsValid {
		if v.Failure == ordering.FailureAuctionNotFound {
			return &BidResult{Outcome: OutcomeNotFound, Message: v.Reason}, nil
		}
		return s.reject(ctx, b, v.Reason, OutcomeRejected)
	}

	if err := a.TryPlaceBid(b, now); err != nil {
		return s.reject(ctx, b, MsgBidTooLow, OutcomeRejected)
	}
	b.Accept()

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Auctions().Update(ctx, a)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		_, err = tx.Bids().Create(ctx, b)
		return err
	})
	if errors.Is(err, ErrConcurrentModification) {
		s.logger.Warn("Auction version conflict",
			"auction_id", a.ID(),
			"version", a.OriginalVersion())
		return s.reject(ctx, b, MsgConcurrentModification, OutcomeConflict)
	}
	if err != nil {
		return nil, err
	}
	a.Persisted()

	s.logger.Info("Bid placed",
		"auction_id", a.ID(),
		"bid_id", b.ID(),
		"sequence", b.Sequence(),
		"amount", b.Amount().String())
	return &BidResult{Success: true, Outcome: OutcomePlaced, Message: MsgBidPlaced, Bid: b}, nil
}

// reject records b as rejected; a rejected bid is kept, never discarded.
func (s *auctionService) reject(ctx context.Context, b *bid.Bid, reason string, outcome BidOutcome) (*BidResult, error) {
	b.Reject(reason)
	if _, err := s.bids.Create(ctx, b); err != nil {
		return nil, err
	}
	return &BidResult{Outcome: outcome, Message: reason, Bid: b}, nil
}

// pause moves a to Paused, reloading it on version conflicts.
func (s *auctionService) pause(ctx context.Context, a *auction.Auction) error {
	for range maxPauseAttempts {
		if a.State() != auction.StateActive {
			return nil
		}
		if err := a.Pause(s.clock.Now()); err != nil {
			return err
		}
		ok, err := s.auctions.Update(ctx, a)
		if err != nil {
			return err
		}
		if ok {
			a.Persisted()
			s.logger.Info("Auction paused", "auction_id", a.ID(), "region", a.Region())
			return nil
		}
		if a, err = s.auctions.Get(ctx, a.ID()); err != nil {
			return err
		}
	}
	return errs.Wrapf(ErrConcurrentModification, "pause auction %s", a.ID())
}

func (s *auctionService) Reconcile(ctx context.Context, auctionID uuid.UUID) (*ReconciliationResult, error) {
	a, err := s.auctions.GetWithBids(ctx, auctionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &ReconciliationResult{Message: MsgAuctionNotFound}, nil
		}
		return nil, err
	}
	if a.State() != auction.StatePaused {
		return &ReconciliationResult{
			Message: fmt.Sprintf("Auction is not paused. Current state: %s", a.State()),
		}, nil
	}

	queued, err := s.bids.GetQueuedDuringPartitionBeforeDeadline(ctx, a.ID(), a.EndTime())
	if err != nil {
		return nil, err
	}
	fresh := make([]*bid.Bid, 0, len(queued))
	for _, b := range queued {
		if b.IsPending() && !a.HasBid(b.ID()) {
			fresh = append(fresh, b)
		}
	}

	now := s.clock.Now()
	if len(fresh) == 0 {
		if err := a.Settle(now); err != nil {
			return nil, err
		}
		if err := s.commitReconciliation(ctx, a, nil); err != nil {
			return conflictResult(err)
		}
		return s.reconciled(a, MsgNothingQueued, 0), nil
	}

	considered := len(a.Bids()) + len(fresh)
	// Every queued bid enters the regional stage, which ranks by arrival only.
	// Amounts matter once the regional winners meet the lead.
	changed := newChangeSet()
	candidates := make([]*bid.Bid, 0, len(fresh)+1)
	candidates = append(candidates, fresh...)

	// The leading bid competes as a copy so its stored status never changes.
	var leadID uuid.UUID
	if lead, ok := a.LeadingBid(); ok {
		lb, err := s.bids.Get(ctx, lead.ID)
		if err != nil {
			return nil, err
		}
		leadID = lb.ID()
		candidates = append(candidates, lb.Clone())
	}

	winners := make([]*bid.Bid, 0, len(region.All()))
	for _, r := range region.All() {
		out := s.resolver.ResolveRegionalConflicts(candidates, r)
		changed.add(out.Changed...)
		if out.Winner != nil {
			winners = append(winners, out.Winner)
		}
	}
	final := s.resolver.DetermineFinalWinner(winners)
	changed.add(final.Changed...)
	changed.drop(leadID)

	if w := final.Winner; w != nil && w.ID() != leadID {
		if w.Amount().GreaterThan(a.CurrentPrice()) {
			if err := a.UpdateWinningBid(w, now); err != nil {
				return nil, err
			}
		} else if w.Reject(fmt.Sprintf("Bid amount must be higher than current price of %s", a.CurrentPrice())) {
			changed.add(w)
		}
	}
	if err := a.Settle(now); err != nil {
		return nil, err
	}
	if err := s.commitReconciliation(ctx, a, changed.list()); err != nil {
		return conflictResult(err)
	}

	s.logger.Info("Auction reconciled",
		"auction_id", a.ID(),
		"queued_bids", len(fresh),
		"state", a.State(),
		"current_price", a.CurrentPrice().String())
	return s.reconciled(a, MsgReconciled, considered), nil
}

func (s *auctionService) commitReconciliation(ctx context.Context, a *auction.Auction, changed []*bid.Bid) error {
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Auctions().Update(ctx, a)
		if err != nil {
			return err
		}
		if !ok {
			return ErrConcurrentModification
		}
		if len(changed) == 0 {
			return nil
		}
		return tx.Bids().UpdateMany(ctx, changed)
	})
	if err != nil {
		return err
	}
	a.Persisted()
	return nil
}

func (s *auctionService) reconciled(a *auction.Auction, msg string, count int) *ReconciliationResult {
	res := &ReconciliationResult{
		Success:        true,
		Message:        msg,
		BidsReconciled: count,
		WinnerID:       a.WinningBidderID(),
	}
	if res.WinnerID != nil {
		price := a.CurrentPrice()
		res.WinningAmount = &price
	}
	return res
}

func conflictResult(err error) (*ReconciliationResult, error) {
	if errors.Is(err, ErrConcurrentModification) {
		return &ReconciliationResult{Message: MsgConcurrentModification}, nil
	}
	return nil, err
}

func (s *auctionService) handlePartitionDetected(ctx context.Context, n partition.Detected) error {
	active, err := s.auctions.GetActiveByRegion(ctx, n.AuctionRegion)
	if err != nil {
		return err
	}
	var errList []error
	for _, a := range active {
		if err := s.pause(ctx, a); err != nil {
			errList = append(errList, err)
		}
	}
	s.logger.Info("Auctions paused for partition",
		"auction_region", n.AuctionRegion,
		"origin_region", n.OriginRegion,
		"count", len(active))
	return errors.Join(errList...)
}

// handlePartitionHealed walks the incident through Reconciling to Resolved
// and, when enabled, reconciles the region's paused auctions in between.
func (s *auctionService) handlePartitionHealed(ctx context.Context, n partition.Healed) error {
	e, err := s.events.GetCurrentActiveForAuctionRegion(ctx, n.AuctionRegion)
	if err != nil {
		return err
	}
	if e != nil && e.Status() == partition.StatusPartitioned {
		if err := e.BeginReconciliation(s.clock.Now()); err != nil {
			return err
		}
		if err := s.events.Update(ctx, e); err != nil {
			return err
		}
	}

	paused, err := s.auctions.GetNeedingReconciliationByRegion(ctx, n.AuctionRegion)
	if err != nil {
		return err
	}
	s.logger.Info("Auctions awaiting reconciliation",
		"auction_region", n.AuctionRegion,
		"count", len(paused),
		"auto_reconcile", s.opts.OnHeal)

	var recErr error
	if s.opts.OnHeal {
		recErr = s.reconcileAll(ctx, paused)
	}

	if e == nil {
		return recErr
	}
	now := s.clock.Now()
	if recErr != nil {
		if err := e.StartPartition(now); err != nil {
			return errors.Join(recErr, err)
		}
		return errors.Join(recErr, s.events.Update(ctx, e))
	}
	if err := e.Resolve(now); err != nil {
		return err
	}
	return s.events.Update(ctx, e)
}

func (s *auctionService) reconcileAll(ctx context.Context, auctions []*auction.Auction) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for _, a := range auctions {
		id := a.ID()
		g.Go(func() error {
			res, err := s.Reconcile(gctx, id)
			if err != nil {
				return errs.Wrapf(err, "reconcile auction %s", id)
			}
			if !res.Success {
				s.logger.Warn("Reconciliation skipped", "auction_id", id, "reason", res.Message)
			}
			return nil
		})
	}
	return g.Wait()
}

// changeSet collects bids in first-seen order, keeping the latest pointer per id.
type changeSet struct {
	order []uuid.UUID
	bids  map[uuid.UUID]*bid.Bid
}

func newChangeSet() *changeSet {
	return &changeSet{bids: make(map[uuid.UUID]*bid.Bid)}
}

func (c *changeSet) add(bids ...*bid.Bid) {
	for _, b := range bids {
		if _, seen := c.bids[b.ID()]; !seen {
			c.order = append(c.order, b.ID())
		}
		c.bids[b.ID()] = b
	}
}

func (c *changeSet) drop(id uuid.UUID) {
	delete(c.bids, id)
}

func (c *changeSet) list() []*bid.Bid {
	out := make([]*bid.Bid, 0, len(c.bids))
	for _, id := range c.order {
		if b, ok := c.bids[id]; ok {
			out = append(out, b)
		}
	}
	return out
}
