package queries

import (
	"context"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/ordering"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAuctionNotFound         = errs.ErrAuctionNotFound
	ErrInvalidConsistencyLevel = errs.New("invalid consistency level")
)

const defaultConsistency = auction.ConsistencyStrong

type AuctionQueries interface {
	GetAuction(ctx context.Context, id uuid.UUID, level auction.ConsistencyLevel) (*AuctionView, error)
	ListBids(ctx context.Context, auctionID uuid.UUID, since *time.Time) ([]*BidView, error)
	ReconciliationCandidates(ctx context.Context, r region.Region) ([]*ReconciliationCandidate, error)
}

type auctionQueriesImpl struct {
	auctions shared.AuctionRepository
	bids     shared.BidRepository
	ordering *ordering.SequenceAssigner
}

func NewAuctionQueries(auctions shared.AuctionRepository, bids shared.BidRepository, seq *ordering.SequenceAssigner) AuctionQueries {
	return &auctionQueriesImpl{auctions: auctions, bids: bids, ordering: seq}
}

// GetAuction reads the summary row for eventual reads and the auction with
// its bid history for strong ones. An empty level means strong.
// The strong history holds decided bids only. Bids queued during a partition
// stay out of it until reconciliation accepts or rejects them; ListBids
// returns them while they are pending.
func (q *auctionQueriesImpl) GetAuction(ctx context.Context, id uuid.UUID, level auction.ConsistencyLevel) (*AuctionView, error) {
	if level == "" {
		level = defaultConsistency
	}
	if !level.IsValid() {
		return nil, errs.Wrapf(ErrInvalidConsistencyLevel, "level %q", level)
	}

	var (
		a   *auction.Auction
		err error
	)
	if level == auction.ConsistencyStrong {
		a, err = q.auctions.GetWithBids(ctx, id)
	} else {
		a, err = q.auctions.Get(ctx, id)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, err
	}
	return NewAuctionView(a, level), nil
}

// ListBids returns every bid of the auction in sequence order, queued and
// rejected ones included.
func (q *auctionQueriesImpl) ListBids(ctx context.Context, auctionID uuid.UUID, since *time.Time) ([]*BidView, error) {
	if _, err := q.auctions.Get(ctx, auctionID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, err
	}

	seq, err := q.ordering.OrderedBids(ctx, auctionID, since)
	if err != nil {
		return nil, err
	}
	out := make([]*BidView, 0)
	for b := range seq {
		out = append(out, NewBidView(b))
	}
	return out, nil
}

// ReconciliationCandidates lists the paused auctions of r with the number of
// partition-queued bids each is holding.
func (q *auctionQueriesImpl) ReconciliationCandidates(ctx context.Context, r region.Region) ([]*ReconciliationCandidate, error) {
	if !r.IsValid() {
		return nil, errs.Wrapf(region.ErrUnknownRegion, "region %q", r)
	}
	paused, err := q.auctions.GetNeedingReconciliationByRegion(ctx, r)
	if err != nil {
		return nil, err
	}

	out := make([]*ReconciliationCandidate, 0, len(paused))
	for _, a := range paused {
		queued, err := q.bids.GetQueuedDuringPartitionBeforeDeadline(ctx, a.ID(), a.EndTime())
		if err != nil {
			return nil, err
		}
		out = append(out, &ReconciliationCandidate{
			AuctionID:    a.ID(),
			Region:       a.Region(),
			CurrentPrice: a.CurrentPrice(),
			QueuedBids:   countPending(queued),
			EndTime:      a.EndTime(),
		})
	}
	return out, nil
}

func countPending(bids []*bid.Bid) int {
	n := 0
	for _, b := range bids {
		if b.IsPending() {
			n++
		}
	}
	return n
}
