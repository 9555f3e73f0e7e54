package queries

import (
	"context"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/usecase/shared"
)

// PartitionObserver exposes the simulator's live view of connectivity.
type PartitionObserver interface {
	IsPartitioned() bool
	ActiveRegions() []region.Region
	GetCurrentRegion(ctx context.Context) region.Region
}

// StatusSource derives the overall partition status.
type StatusSource interface {
	GetPartitionStatus(ctx context.Context) (partition.Status, error)
}

type PartitionQueries interface {
	Status(ctx context.Context) (*PartitionStatusView, error)
	History(ctx context.Context, since time.Time) ([]*PartitionEventView, error)
}

type partitionQueriesImpl struct {
	observer PartitionObserver
	status   StatusSource
	events   shared.PartitionEventRepository
}

func NewPartitionQueries(observer PartitionObserver, status StatusSource, events shared.PartitionEventRepository) PartitionQueries {
	return &partitionQueriesImpl{observer: observer, status: status, events: events}
}

func (q *partitionQueriesImpl) Status(ctx context.Context) (*PartitionStatusView, error) {
	st, err := q.status.GetPartitionStatus(ctx)
	if err != nil {
		return nil, err
	}
	active, err := q.events.GetCurrentActive(ctx)
	if err != nil {
		return nil, err
	}

	v := &PartitionStatusView{
		Status:        st,
		IsPartitioned: q.observer.IsPartitioned(),
		ActiveRegions: q.observer.ActiveRegions(),
		CurrentRegion: q.observer.GetCurrentRegion(ctx),
	}
	if active != nil {
		v.ActiveEvent = NewPartitionEventView(active)
	}
	return v, nil
}

// History lists incidents created at or after since, oldest first.
func (q *partitionQueriesImpl) History(ctx context.Context, since time.Time) ([]*PartitionEventView, error) {
	events, err := q.events.GetHistory(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]*PartitionEventView, 0, len(events))
	for _, e := range events {
		out = append(out, NewPartitionEventView(e))
	}
	return out, nil
}
