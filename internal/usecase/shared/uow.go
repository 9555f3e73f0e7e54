package shared

import (
	"context"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// fn may run more than once and must not commit domain state itself.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Auctions() AuctionRepository
	Bids() BidRepository
	PartitionEvents() PartitionEventRepository
	Vehicles() VehicleRepository
}

// AuctionRepository persists the auction aggregate. Get returns summary
// fields only; GetWithBids also loads the settled bid references.
type AuctionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*auction.Auction, error)
	GetWithBids(ctx context.Context, id uuid.UUID) (*auction.Auction, error)
	Create(ctx context.Context, a *auction.Auction) (uuid.UUID, error)
	// Update compares a.OriginalVersion() with the stored version and
	// reports false when another writer got there first.
	Update(ctx context.Context, a *auction.Auction) (bool, error)
	GetActiveByRegion(ctx context.Context, r region.Region) ([]*auction.Auction, error)
	GetNeedingReconciliationByRegion(ctx context.Context, r region.Region) ([]*auction.Auction, error)
}

type BidRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*bid.Bid, error)
	GetByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error)
	// InitSequence creates the auction's counter at zero.
	InitSequence(ctx context.Context, auctionID uuid.UUID) error
	NextSequence(ctx context.Context, auctionID uuid.UUID) (int64, error)
	LastSequence(ctx context.Context, auctionID uuid.UUID) (int64, error)
	Create(ctx context.Context, b *bid.Bid) (uuid.UUID, error)
	Update(ctx context.Context, b *bid.Bid) error
	UpdateMany(ctx context.Context, bids []*bid.Bid) error
	GetQueuedDuringPartitionBeforeDeadline(ctx context.Context, auctionID uuid.UUID, deadline time.Time) ([]*bid.Bid, error)
}

type PartitionEventRepository interface {
	// GetCurrentActive and GetCurrentActiveForAuctionRegion return nil when no incident is open.
	GetCurrentActive(ctx context.Context) (*partition.Event, error)
	GetCurrentActiveForAuctionRegion(ctx context.Context, r region.Region) (*partition.Event, error)
	Create(ctx context.Context, e *partition.Event) (uuid.UUID, error)
	Update(ctx context.Context, e *partition.Event) error
	GetHistory(ctx context.Context, since time.Time) ([]*partition.Event, error)
}

type VehicleRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	List(ctx context.Context, r *region.Region) ([]*vehicle.Vehicle, error)
	Create(ctx context.Context, v *vehicle.Vehicle) (uuid.UUID, error)
	Update(ctx context.Context, v *vehicle.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SequenceCounter hands out per-auction bid sequence numbers.
type SequenceCounter interface {
	Next(ctx context.Context, auctionID uuid.UUID) (int64, error)
}
