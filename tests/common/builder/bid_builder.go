//go:build unit || e2e

package builder

import (
	"time"

	dombid "car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BidBuilder struct {
	ID                uuid.UUID
	AuctionID         uuid.UUID
	BidderID          uuid.UUID
	Amount            decimal.Decimal
	Origin            region.Region
	Sequence          int64
	CreatedAt         time.Time
	Accepted          bool
	RejectionReason   *string
	IsDuringPartition bool
}

func NewBidBuilder() *BidBuilder {
	return &BidBuilder{
		ID:        uuid.New(),
		AuctionID: uuid.New(),
		BidderID:  uuid.New(),
		Amount:    decimal.NewFromInt(11000),
		Origin:    region.USEast,
		Sequence:  1,
		CreatedAt: time.Now().UTC(),
	}
}

func (b *BidBuilder) With(mutate func(*BidBuilder)) *BidBuilder {
	mutate(b)
	return b
}

func (b *BidBuilder) BuildDomain() *dombid.Bid {
	return dombid.ReconstructBid(b.ID, b.AuctionID, b.BidderID, b.Amount, b.Origin, b.Sequence, b.CreatedAt, b.Accepted, b.RejectionReason, b.IsDuringPartition)
}

// Fluent builder methods
func (b *BidBuilder) ForAuction(id uuid.UUID) *BidBuilder {
	b.AuctionID = id
	return b
}

func (b *BidBuilder) WithAmount(amount int64) *BidBuilder {
	b.Amount = decimal.NewFromInt(amount)
	return b
}

func (b *BidBuilder) WithOrigin(r region.Region) *BidBuilder {
	b.Origin = r
	return b
}

func (b *BidBuilder) WithSequence(seq int64) *BidBuilder {
	b.Sequence = seq
	return b
}

func (b *BidBuilder) WithCreatedAt(t time.Time) *BidBuilder {
	b.CreatedAt = t
	return b
}

func (b *BidBuilder) AsAccepted() *BidBuilder {
	b.Accepted = true
	b.RejectionReason = nil
	return b
}

func (b *BidBuilder) AsQueued() *BidBuilder {
	b.IsDuringPartition = true
	b.Accepted = false
	b.RejectionReason = nil
	return b
}
