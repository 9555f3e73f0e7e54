package request

import (
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/usecase/commands"
)

type SimulatePartitionRequest struct {
	OriginRegion  string `json:"origin_region" binding:"required"`
	AuctionRegion string `json:"auction_region" binding:"required"`
	// DurationSeconds of 0 falls back to the configured heal timeout.
	DurationSeconds int `json:"duration_seconds" binding:"gte=0"`
}

func (r SimulatePartitionRequest) ToCommand() (commands.SimulatePartitionRequest, error) {
	origin, err := region.Parse(r.OriginRegion)
	if err != nil {
		return commands.SimulatePartitionRequest{}, err
	}
	home, err := region.Parse(r.AuctionRegion)
	if err != nil {
		return commands.SimulatePartitionRequest{}, err
	}
	return commands.SimulatePartitionRequest{
		OriginRegion:  origin,
		AuctionRegion: home,
		Duration:      time.Duration(r.DurationSeconds) * time.Second,
	}, nil
}

type UpdatePartitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdatePartitionStatusRequest) ToStatus() (partition.Status, error) {
	return partition.ParseStatus(r.Status)
}

type SetRegionRequest struct {
	Region string `json:"region" binding:"required"`
}
