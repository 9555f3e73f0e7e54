package converter

import (
	"fmt"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AuctionRow mirrors the auctions table.
type AuctionRow struct {
	ID              uuid.UUID
	VehicleID       uuid.UUID
	Region          string
	State           string
	StartingPrice   pgtype.Numeric
	ReservePrice    pgtype.Numeric
	CurrentPrice    pgtype.Numeric
	WinningBidderID pgtype.UUID
	StartTime       pgtype.Timestamptz
	EndTime         pgtype.Timestamptz
	Version         int64
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// ScanTargets lists the row fields in AuctionColumns order.
func (r *AuctionRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.VehicleID, &r.Region, &r.State,
		&r.StartingPrice, &r.ReservePrice, &r.CurrentPrice, &r.WinningBidderID,
		&r.StartTime, &r.EndTime, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	}
}

const AuctionColumns = `id, vehicle_id, region, state, starting_price, reserve_price, current_price,
	winning_bidder_id, start_time, end_time, version, created_at, updated_at`

func AuctionToRow(a *auction.Auction) AuctionRow {
	return AuctionRow{
		ID:              a.ID(),
		VehicleID:       a.VehicleID(),
		Region:          a.Region().String(),
		State:           a.State().String(),
		StartingPrice:   pgconv.NumericFromDecimal(a.StartingPrice()),
		ReservePrice:    pgconv.NumericFromDecimalPtr(a.ReservePrice()),
		CurrentPrice:    pgconv.NumericFromDecimal(a.CurrentPrice()),
		WinningBidderID: pgconv.UUIDPtrToPgtype(a.WinningBidderID()),
		StartTime:       pgconv.TimeToPgtype(a.StartTime()),
		EndTime:         pgconv.TimeToPgtype(a.EndTime()),
		Version:         a.Version(),
		CreatedAt:       pgconv.TimeToPgtype(a.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AuctionFromRow(r AuctionRow, refs []auction.BidRef) (*auction.Auction, error) {
	state := auction.State(r.State)
	if !state.IsValid() {
		return nil, fmt.Errorf("auction %s has unknown state %q", r.ID, r.State)
	}
	rg, err := region.Parse(r.Region)
	if err != nil {
		return nil, err
	}
	starting, err := pgconv.DecimalFromNumeric(r.StartingPrice)
	if err != nil {
		return nil, fmt.Errorf("starting_price: %w", err)
	}
	reserve, err := pgconv.DecimalPtrFromNumeric(r.ReservePrice)
	if err != nil {
		return nil, fmt.Errorf("reserve_price: %w", err)
	}
	current, err := pgconv.DecimalFromNumeric(r.CurrentPrice)
	if err != nil {
		return nil, fmt.Errorf("current_price: %w", err)
	}

	return auction.ReconstructAuction(
		r.ID, r.VehicleID, rg, state,
		starting, reserve, current,
		pgconv.UUIDPtrFromPgtype(r.WinningBidderID),
		pgconv.TimeFromPgtype(r.StartTime), pgconv.TimeFromPgtype(r.EndTime),
		r.Version, refs,
		pgconv.TimeFromPgtype(r.CreatedAt), pgconv.TimeFromPgtype(r.UpdatedAt),
	), nil
}
