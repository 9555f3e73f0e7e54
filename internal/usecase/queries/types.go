package queries

import (
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionView is the read model of an auction. Bids is only filled for strong reads.
type AuctionView struct {
	ID              uuid.UUID                `json:"id"`
	VehicleID       uuid.UUID                `json:"vehicle_id"`
	Region          region.Region            `json:"region"`
	State           auction.State            `json:"state"`
	StartingPrice   decimal.Decimal          `json:"starting_price"`
	ReservePrice    *decimal.Decimal         `json:"reserve_price,omitempty"`
	CurrentPrice    decimal.Decimal          `json:"current_price"`
	WinningBidderID *uuid.UUID               `json:"winning_bidder_id,omitempty"`
	StartTime       time.Time                `json:"start_time"`
	EndTime         time.Time                `json:"end_time"`
	Version         int64                    `json:"version"`
	Consistency     auction.ConsistencyLevel `json:"consistency"`
	Bids            []BidRefView             `json:"bids,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type BidRefView struct {
	ID        uuid.UUID       `json:"id"`
	BidderID  uuid.UUID       `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	Sequence  int64           `json:"sequence"`
	Accepted  bool            `json:"accepted"`
	CreatedAt time.Time       `json:"created_at"`
}

type BidView struct {
	ID                uuid.UUID       `json:"id"`
	AuctionID         uuid.UUID       `json:"auction_id"`
	BidderID          uuid.UUID       `json:"bidder_id"`
	Amount            decimal.Decimal `json:"amount"`
	OriginRegion      region.Region   `json:"origin_region"`
	Sequence          int64           `json:"sequence"`
	Status            bid.Status      `json:"status"`
	RejectionReason   *string         `json:"rejection_reason,omitempty"`
	IsDuringPartition bool            `json:"is_during_partition"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ReconciliationCandidate is a paused auction waiting for Reconcile.
type ReconciliationCandidate struct {
	AuctionID    uuid.UUID       `json:"auction_id"`
	Region       region.Region   `json:"region"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	QueuedBids   int             `json:"queued_bids"`
	EndTime      time.Time       `json:"end_time"`
}

type PartitionEventView struct {
	ID            uuid.UUID        `json:"id"`
	OriginRegion  region.Region    `json:"origin_region"`
	AuctionRegion region.Region    `json:"auction_region"`
	Status        partition.Status `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
	EndTime       *time.Time       `json:"end_time,omitempty"`
}

type PartitionStatusView struct {
	Status        partition.Status    `json:"status"`
	IsPartitioned bool                `json:"is_partitioned"`
	ActiveRegions []region.Region     `json:"active_regions"`
	CurrentRegion region.Region       `json:"current_region"`
	ActiveEvent   *PartitionEventView `json:"active_event,omitempty"`
}

type VehicleView struct {
	ID               uuid.UUID     `json:"id"`
	Brand            string        `json:"brand"`
	Model            string        `json:"model"`
	Year             int           `json:"year"`
	Type             vehicle.Type  `json:"type"`
	Region           region.Region `json:"region"`
	NumberOfDoors    int           `json:"number_of_doors,omitempty"`
	HasSunroof       bool          `json:"has_sunroof,omitempty"`
	CargoCapacity    float64       `json:"cargo_capacity,omitempty"`
	HasThirdRow      bool          `json:"has_third_row,omitempty"`
	HasAllWheelDrive bool          `json:"has_all_wheel_drive,omitempty"`
	BedSize          string        `json:"bed_size,omitempty"`
	CabType          string        `json:"cab_type,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`
}

func NewAuctionView(a *auction.Auction, level auction.ConsistencyLevel) *AuctionView {
	v := &AuctionView{
		ID:              a.ID(),
		VehicleID:       a.VehicleID(),
		Region:          a.Region(),
		State:           a.State(),
		StartingPrice:   a.StartingPrice(),
		ReservePrice:    a.ReservePrice(),
		CurrentPrice:    a.CurrentPrice(),
		WinningBidderID: a.WinningBidderID(),
		StartTime:       a.StartTime(),
		EndTime:         a.EndTime(),
		Version:         a.Version(),
		Consistency:     level,
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
	for _, r := range a.Bids() {
		v.Bids = append(v.Bids, BidRefView{
			ID:        r.ID,
			BidderID:  r.BidderID,
			Amount:    r.Amount,
			Sequence:  r.Sequence,
			Accepted:  r.Accepted,
			CreatedAt: r.CreatedAt,
		})
	}
	return v
}

func NewBidView(b *bid.Bid) *BidView {
	return &BidView{
		ID:                b.ID(),
		AuctionID:         b.AuctionID(),
		BidderID:          b.BidderID(),
		Amount:            b.Amount(),
		OriginRegion:      b.OriginRegion(),
		Sequence:          b.Sequence(),
		Status:            b.Status(),
		RejectionReason:   b.RejectionReason(),
		IsDuringPartition: b.IsDuringPartition(),
		CreatedAt:         b.CreatedAt(),
	}
}

func NewPartitionEventView(e *partition.Event) *PartitionEventView {
	return &PartitionEventView{
		ID:            e.ID(),
		OriginRegion:  e.OriginBidRegion(),
		AuctionRegion: e.AuctionRegion(),
		Status:        e.Status(),
		CreatedAt:     e.CreatedAt(),
		UpdatedAt:     e.UpdatedAt(),
		EndTime:       e.EndTime(),
	}
}

func NewVehicleView(v *vehicle.Vehicle) *VehicleView {
	d := v.Details()
	return &VehicleView{
		ID:               v.ID(),
		Brand:            v.Brand(),
		Model:            v.Model(),
		Year:             v.Year(),
		Type:             v.Type(),
		Region:           v.Region(),
		NumberOfDoors:    d.NumberOfDoors,
		HasSunroof:       d.HasSunroof,
		CargoCapacity:    d.CargoCapacity,
		HasThirdRow:      d.HasThirdRow,
		HasAllWheelDrive: d.HasAllWheelDrive,
		BedSize:          d.BedSize,
		CabType:          d.CabType,
		CreatedAt:        v.CreatedAt(),
		UpdatedAt:        v.UpdatedAt(),
	}
}
