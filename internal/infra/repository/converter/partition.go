package converter

import (
	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PartitionEventRow struct {
	ID              uuid.UUID
	OriginBidRegion string
	AuctionRegion   string
	Status          string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
	EndTime         pgtype.Timestamptz
}

func (r *PartitionEventRow) ScanTargets() []any {
	return []any{&r.ID, &r.OriginBidRegion, &r.AuctionRegion, &r.Status, &r.CreatedAt, &r.UpdatedAt, &r.EndTime}
}

const PartitionEventColumns = `id, origin_bid_region, auction_region, status, created_at, updated_at, end_time`

func PartitionEventFromRow(r PartitionEventRow) (*partition.Event, error) {
	status, err := partition.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return partition.ReconstructEvent(
		r.ID,
		region.Region(r.OriginBidRegion),
		region.Region(r.AuctionRegion),
		status,
		pgconv.TimeFromPgtype(r.CreatedAt),
		pgconv.TimePtrFromPgtype(r.UpdatedAt),
		pgconv.TimePtrFromPgtype(r.EndTime),
	), nil
}
