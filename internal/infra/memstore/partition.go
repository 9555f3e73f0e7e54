package memstore

import (
	"context"
	"slices"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"

	"github.com/google/uuid"
)

type PartitionEventStore struct {
	s *Store
}

func (r *PartitionEventStore) GetCurrentActive(ctx context.Context) (*partition.Event, error) {
	return r.latestActive(func(*partition.Event) bool { return true }), nil
}

func (r *PartitionEventStore) GetCurrentActiveForAuctionRegion(ctx context.Context, rg region.Region) (*partition.Event, error) {
	return r.latestActive(func(e *partition.Event) bool { return e.AuctionRegion() == rg }), nil
}

func (r *PartitionEventStore) Create(ctx context.Context, e *partition.Event) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.events[e.ID()]; exists {
		return uuid.Nil, infra.WrapRepoErr(r.s.logger, infra.KindDuplicateKey, "partition event already exists", nil)
	}
	if e.IsActive() {
		for _, other := range r.s.events {
			if other.IsActive() && other.AuctionRegion() == e.AuctionRegion() {
				return uuid.Nil, infra.WrapRepoErr(r.s.logger, infra.KindConflict, "auction region already has an active partition", nil)
			}
		}
	}
	r.s.events[e.ID()] = copyEvent(e)
	return e.ID(), nil
}

func (r *PartitionEventStore) Update(ctx context.Context, e *partition.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID()]; !ok {
		return infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "partition event not found", nil)
	}
	r.s.events[e.ID()] = copyEvent(e)
	return nil
}

func (r *PartitionEventStore) GetHistory(ctx context.Context, since time.Time) ([]*partition.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*partition.Event
	for _, e := range r.s.events {
		if !e.CreatedAt().Before(since) {
			out = append(out, copyEvent(e))
		}
	}
	slices.SortFunc(out, func(a, b *partition.Event) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	return out, nil
}

func (r *PartitionEventStore) latestActive(match func(*partition.Event) bool) *partition.Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *partition.Event
	for _, e := range r.s.events {
		if !e.IsActive() || !match(e) {
			continue
		}
		if latest == nil || e.CreatedAt().After(latest.CreatedAt()) {
			latest = e
		}
	}
	if latest == nil {
		return nil
	}
	return copyEvent(latest)
}

func copyEvent(e *partition.Event) *partition.Event {
	return partition.ReconstructEvent(
		e.ID(), e.OriginBidRegion(), e.AuctionRegion(), e.Status(),
		e.CreatedAt(), copyTime(e.UpdatedAt()), copyTime(e.EndTime()),
	)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
