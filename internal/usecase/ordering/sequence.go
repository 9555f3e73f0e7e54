package ordering

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"car-auction/internal/domain/bid"
	"car-auction/internal/infra"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
)

type Failure string

const (
	FailureNone            Failure = ""
	FailureAuctionNotFound Failure = "AuctionNotFound"
	FailureAmountTooLow    Failure = "AmountTooLow"
)

const ReasonAuctionNotFound = "Auction not found"

var ErrSequenceFailed = errs.New("failed to assign bid sequence")

// Validation is the outcome of checking a bid against its auction.
type Validation struct {
	IsValid bool
	Failure Failure
	Reason  string
}

type SequenceAssigner struct {
	auctions shared.AuctionRepository
	bids     shared.BidRepository
	counter  shared.SequenceCounter
	logger   *slog.Logger
}

func NewSequenceAssigner(
	auctions shared.AuctionRepository,
	bids shared.BidRepository,
	counter shared.SequenceCounter,
	logger *slog.Logger,
) *SequenceAssigner {
	return &SequenceAssigner{
		auctions: auctions,
		bids:     bids,
		counter:  counter,
		logger:   logger,
	}
}

// NextSequence returns the auction's next bid sequence, starting at 1.
func (s *SequenceAssigner) NextSequence(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	seq, err := s.counter.Next(ctx, auctionID)
	if err != nil {
		return 0, errs.Mark(err, ErrSequenceFailed)
	}
	return seq, nil
}

func (s *SequenceAssigner) ValidateBidOrder(ctx context.Context, auctionID uuid.UUID, b *bid.Bid) (Validation, error) {
	a, err := s.auctions.Get(ctx, auctionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return Validation{Failure: FailureAuctionNotFound, Reason: ReasonAuctionNotFound}, nil
		}
		return Validation{}, err
	}

	if b.Amount().LessThanOrEqual(a.CurrentPrice()) {
		return Validation{
			Failure: FailureAmountTooLow,
			Reason:  fmt.Sprintf("Bid amount must be higher than current price of %s", a.CurrentPrice()),
		}, nil
	}
	return Validation{IsValid: true}, nil
}

// OrderedBids yields the auction's bids by sequence, then creation time.
// A non-nil since keeps bids created at or after it.
func (s *SequenceAssigner) OrderedBids(ctx context.Context, auctionID uuid.UUID, since *time.Time) (iter.Seq[*bid.Bid], error) {
	all, err := s.bids.GetByAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if since != nil {
		all = slices.DeleteFunc(all, func(b *bid.Bid) bool { return b.CreatedAt().Before(*since) })
	}
	bid.SortBySequence(all)
	return slices.Values(all), nil
}

// StoreCounter draws sequences from the bid store's counter row.
type StoreCounter struct {
	bids shared.BidRepository
}

func NewStoreCounter(bids shared.BidRepository) *StoreCounter {
	return &StoreCounter{bids: bids}
}

func (c *StoreCounter) Next(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	return c.bids.NextSequence(ctx, auctionID)
}
