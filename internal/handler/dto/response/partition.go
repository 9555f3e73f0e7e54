package response

import (
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type PartitionEventResponse struct {
	ID            string     `json:"id"`
	OriginRegion  string     `json:"origin_region"`
	AuctionRegion string     `json:"auction_region"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
}

func FromPartitionEventView(v *queries.PartitionEventView) (*PartitionEventResponse, error) {
	var res PartitionEventResponse
	if err := copier.CopyWithOption(&res, v, copyOptions); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromPartitionEvent(e *partition.Event) (*PartitionEventResponse, error) {
	return FromPartitionEventView(queries.NewPartitionEventView(e))
}

func FromPartitionEventViews(views []*queries.PartitionEventView) ([]*PartitionEventResponse, error) {
	res := make([]*PartitionEventResponse, 0, len(views))
	for _, v := range views {
		r, err := FromPartitionEventView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type PartitionStatusResponse struct {
	Status        string                  `json:"status"`
	IsPartitioned bool                    `json:"is_partitioned"`
	ActiveRegions []string                `json:"active_regions"`
	CurrentRegion string                  `json:"current_region"`
	ActiveEvent   *PartitionEventResponse `json:"active_event,omitempty"`
}

func FromPartitionStatusView(v *queries.PartitionStatusView) (*PartitionStatusResponse, error) {
	res := &PartitionStatusResponse{
		Status:        v.Status.String(),
		IsPartitioned: v.IsPartitioned,
		ActiveRegions: make([]string, 0, len(v.ActiveRegions)),
		CurrentRegion: v.CurrentRegion.String(),
	}
	for _, r := range v.ActiveRegions {
		res.ActiveRegions = append(res.ActiveRegions, r.String())
	}
	if v.ActiveEvent != nil {
		e, err := FromPartitionEventView(v.ActiveEvent)
		if err != nil {
			return nil, err
		}
		res.ActiveEvent = e
	}
	return res, nil
}
