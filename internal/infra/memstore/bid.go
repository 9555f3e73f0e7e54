package memstore

import (
	"context"
	"time"

	"car-auction/internal/domain/bid"
	"car-auction/internal/infra"

	"github.com/google/uuid"
)

type BidStore struct {
	s *Store
}

func (r *BidStore) Get(ctx context.Context, id uuid.UUID) (*bid.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bids[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "bid not found", nil)
	}
	return b.Clone(), nil
}

func (r *BidStore) GetByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	out := r.filter(func(b *bid.Bid) bool { return b.AuctionID() == auctionID })
	bid.SortBySequence(out)
	return out, nil
}

func (r *BidStore) InitSequence(ctx context.Context, auctionID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.sequences[auctionID]; exists {
		return infra.WrapRepoErr(r.s.logger, infra.KindDuplicateKey, "bid sequence already initialized", nil)
	}
	r.s.sequences[auctionID] = 0
	return nil
}

func (r *BidStore) NextSequence(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.sequences[auctionID]
	if !ok {
		return 0, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "bid sequence not found", nil)
	}
	cur++
	r.s.sequences[auctionID] = cur
	return cur, nil
}

// LastSequence is the highest sequence stored on a bid of the auction.
func (r *BidStore) LastSequence(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var last int64
	for _, b := range r.s.bids {
		if b.AuctionID() == auctionID && b.Sequence() > last {
			last = b.Sequence()
		}
	}
	return last, nil
}

func (r *BidStore) Create(ctx context.Context, b *bid.Bid) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.bids[b.ID()]; exists {
		return uuid.Nil, infra.WrapRepoErr(r.s.logger, infra.KindDuplicateKey, "bid already exists", nil)
	}
	if _, ok := r.s.auctions[b.AuctionID()]; !ok {
		return uuid.Nil, infra.WrapRepoErr(r.s.logger, infra.KindForeignKeyViolated, "bid references unknown auction", nil)
	}
	r.s.bids[b.ID()] = b.Clone()
	return b.ID(), nil
}

func (r *BidStore) Update(ctx context.Context, b *bid.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.update(b)
}

func (r *BidStore) UpdateMany(ctx context.Context, bids []*bid.Bid) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range bids {
		if _, ok := r.s.bids[b.ID()]; !ok {
			return infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "bid not found", nil)
		}
	}
	for _, b := range bids {
		r.s.bids[b.ID()] = b.Clone()
	}
	return nil
}

// GetQueuedDuringPartitionBeforeDeadline returns the partition-queued bids
// created before deadline, oldest first.
func (r *BidStore) GetQueuedDuringPartitionBeforeDeadline(ctx context.Context, auctionID uuid.UUID, deadline time.Time) ([]*bid.Bid, error) {
	out := r.filter(func(b *bid.Bid) bool {
		return b.AuctionID() == auctionID && b.IsDuringPartition() && b.CreatedAt().Before(deadline)
	})
	bid.SortByArrival(out)
	return out, nil
}

func (r *BidStore) update(b *bid.Bid) error {
	if _, ok := r.s.bids[b.ID()]; !ok {
		return infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "bid not found", nil)
	}
	r.s.bids[b.ID()] = b.Clone()
	return nil
}

func (r *BidStore) filter(keep func(*bid.Bid) bool) []*bid.Bid {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*bid.Bid
	for _, b := range r.s.bids {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}
