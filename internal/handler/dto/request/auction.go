package request

import (
	"time"

	"car-auction/internal/domain/region"
	"car-auction/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAuctionRequest struct {
	VehicleID     uuid.UUID        `json:"vehicle_id" binding:"required"`
	Region        *string          `json:"region,omitempty"`
	StartingPrice decimal.Decimal  `json:"starting_price"`
	ReservePrice  *decimal.Decimal `json:"reserve_price,omitempty"`
	StartTime     time.Time        `json:"start_time" binding:"required"`
	EndTime       time.Time        `json:"end_time" binding:"required"`
}

// ToCommand leaves Region empty when omitted so the vehicle's region applies.
func (r CreateAuctionRequest) ToCommand() (commands.CreateAuctionRequest, error) {
	cmd := commands.CreateAuctionRequest{
		VehicleID:     r.VehicleID,
		StartingPrice: r.StartingPrice,
		ReservePrice:  r.ReservePrice,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
	}
	if r.Region != nil {
		rg, err := region.Parse(*r.Region)
		if err != nil {
			return commands.CreateAuctionRequest{}, err
		}
		cmd.Region = rg
	}
	return cmd, nil
}

type PlaceBidRequest struct {
	BidderID uuid.UUID       `json:"bidder_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}
