package converter

import (
	"fmt"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BidRow struct {
	ID                uuid.UUID
	AuctionID         uuid.UUID
	BidderID          uuid.UUID
	Amount            pgtype.Numeric
	OriginRegion      string
	Sequence          int64
	IsAccepted        bool
	RejectionReason   pgtype.Text
	IsDuringPartition bool
	CreatedAt         pgtype.Timestamptz
}

func (r *BidRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.AuctionID, &r.BidderID, &r.Amount, &r.OriginRegion, &r.Sequence,
		&r.IsAccepted, &r.RejectionReason, &r.IsDuringPartition, &r.CreatedAt,
	}
}

const BidColumns = `id, auction_id, bidder_id, amount, origin_region, sequence,
	is_accepted, rejection_reason, is_during_partition, created_at`

func BidToRow(b *bid.Bid) BidRow {
	return BidRow{
		ID:                b.ID(),
		AuctionID:         b.AuctionID(),
		BidderID:          b.BidderID(),
		Amount:            pgconv.NumericFromDecimal(b.Amount()),
		OriginRegion:      b.OriginRegion().String(),
		Sequence:          b.Sequence(),
		IsAccepted:        b.IsAccepted(),
		RejectionReason:   pgconv.StringPtrToPgtype(b.RejectionReason()),
		IsDuringPartition: b.IsDuringPartition(),
		CreatedAt:         pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BidFromRow(r BidRow) (*bid.Bid, error) {
	amount, err := pgconv.DecimalFromNumeric(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("bid %s amount: %w", r.ID, err)
	}
	rg, err := region.Parse(r.OriginRegion)
	if err != nil {
		return nil, err
	}
	return bid.ReconstructBid(
		r.ID, r.AuctionID, r.BidderID, amount, rg, r.Sequence,
		pgconv.TimeFromPgtype(r.CreatedAt),
		r.IsAccepted, pgconv.StringPtrFromPgtype(r.RejectionReason), r.IsDuringPartition,
	), nil
}

func BidRefFromRow(r BidRow) (auction.BidRef, error) {
	b, err := BidFromRow(r)
	if err != nil {
		return auction.BidRef{}, err
	}
	return auction.RefOf(b), nil
}
