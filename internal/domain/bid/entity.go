package bid

import (
	"time"

	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = errs.New("bid amount must be positive")
	ErrInvalidSequence   = errs.New("bid sequence must be positive")
	ErrInvalidRegion     = errs.New("bid origin region is invalid")
	ErrMissingBidder     = errs.New("bidder id is required")
)

type Bid struct {
	id                uuid.UUID
	auctionID         uuid.UUID
	bidderID          uuid.UUID
	amount            decimal.Decimal
	originRegion      region.Region
	sequence          int64
	createdAt         time.Time
	isAccepted        bool
	rejectionReason   *string
	isDuringPartition bool
}

func NewBid(auctionID, bidderID uuid.UUID, amount decimal.Decimal, origin region.Region, sequence int64, now time.Time) (*Bid, error) {
	if bidderID == uuid.Nil {
		return nil, ErrMissingBidder
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if sequence < 1 {
		return nil, ErrInvalidSequence
	}
	if !origin.IsValid() {
		return nil, ErrInvalidRegion
	}

	return &Bid{
		id:           uuid.New(),
		auctionID:    auctionID,
		bidderID:     bidderID,
		amount:       amount,
		originRegion: origin,
		sequence:     sequence,
		createdAt:    now,
	}, nil
}

func ReconstructBid(
	id, auctionID, bidderID uuid.UUID,
	amount decimal.Decimal,
	origin region.Region,
	sequence int64,
	createdAt time.Time,
	isAccepted bool,
	rejectionReason *string,
	isDuringPartition bool,
) *Bid {
	return &Bid{
		id:                id,
		auctionID:         auctionID,
		bidderID:          bidderID,
		amount:            amount,
		originRegion:      origin,
		sequence:          sequence,
		createdAt:         createdAt,
		isAccepted:        isAccepted,
		rejectionReason:   rejectionReason,
		isDuringPartition: isDuringPartition,
	}
}

func (b *Bid) ID() uuid.UUID               { return b.id }
func (b *Bid) AuctionID() uuid.UUID        { return b.auctionID }
func (b *Bid) BidderID() uuid.UUID         { return b.bidderID }
func (b *Bid) Amount() decimal.Decimal     { return b.amount }
func (b *Bid) OriginRegion() region.Region { return b.originRegion }
func (b *Bid) Sequence() int64             { return b.sequence }
func (b *Bid) CreatedAt() time.Time        { return b.createdAt }
func (b *Bid) IsAccepted() bool            { return b.isAccepted }
func (b *Bid) RejectionReason() *string    { return b.rejectionReason }
func (b *Bid) IsDuringPartition() bool     { return b.isDuringPartition }

func (b *Bid) Status() Status {
	switch {
	case b.isAccepted:
		return StatusAccepted
	case b.rejectionReason != nil:
		return StatusRejected
	default:
		return StatusPending
	}
}

// IsPending reports a partition-queued bid that no resolution step has settled yet.
func (b *Bid) IsPending() bool {
	return b.Status() == StatusPending
}

// Accept reports whether the status changed.
func (b *Bid) Accept() bool {
	changed := !b.isAccepted || b.rejectionReason != nil
	b.isAccepted = true
	b.rejectionReason = nil
	return changed
}

// Reject reports whether the status changed.
func (b *Bid) Reject(reason string) bool {
	changed := b.isAccepted || b.rejectionReason == nil || *b.rejectionReason != reason
	b.isAccepted = false
	b.rejectionReason = &reason
	return changed
}

func (b *Bid) MarkAsDuringPartition() {
	b.isDuringPartition = true
}

// Clone returns an independent copy whose status changes do not affect b.
func (b *Bid) Clone() *Bid {
	c := *b
	if b.rejectionReason != nil {
		reason := *b.rejectionReason
		c.rejectionReason = &reason
	}
	return &c
}
