package memstore

import (
	"context"
	"slices"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"

	"github.com/google/uuid"
)

type AuctionStore struct {
	s *Store
}

func (r *AuctionStore) Get(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.auctions[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "auction not found", nil)
	}
	return copyAuction(a, nil), nil
}

func (r *AuctionStore) GetWithBids(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.auctions[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "auction not found", nil)
	}

	var settled []*bid.Bid
	for _, b := range r.s.bids {
		if b.AuctionID() == id && !b.IsPending() {
			settled = append(settled, b)
		}
	}
	bid.SortByArrival(settled)

	refs := make([]auction.BidRef, 0, len(settled))
	for _, b := range settled {
		refs = append(refs, auction.RefOf(b))
	}
	return copyAuction(a, refs), nil
}

func (r *AuctionStore) Create(ctx context.Context, a *auction.Auction) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.auctions[a.ID()]; exists {
		return uuid.Nil, infra.WrapRepoErr(r.s.logger, infra.KindDuplicateKey, "auction already exists", nil)
	}
	r.s.auctions[a.ID()] = copyAuction(a, nil)
	return a.ID(), nil
}

func (r *AuctionStore) Update(ctx context.Context, a *auction.Auction) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.auctions[a.ID()]
	if !ok {
		return false, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "auction not found", nil)
	}
	if stored.Version() != a.OriginalVersion() {
		return false, nil
	}
	r.s.auctions[a.ID()] = copyAuction(a, nil)
	return true, nil
}

func (r *AuctionStore) GetActiveByRegion(ctx context.Context, rg region.Region) ([]*auction.Auction, error) {
	return r.byRegionAndState(rg, auction.StateActive), nil
}

func (r *AuctionStore) GetNeedingReconciliationByRegion(ctx context.Context, rg region.Region) ([]*auction.Auction, error) {
	return r.byRegionAndState(rg, auction.StatePaused), nil
}

func (r *AuctionStore) byRegionAndState(rg region.Region, st auction.State) []*auction.Auction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*auction.Auction
	for _, a := range r.s.auctions {
		if a.Region() == rg && a.State() == st {
			out = append(out, copyAuction(a, nil))
		}
	}
	slices.SortFunc(out, func(x, y *auction.Auction) int {
		return x.CreatedAt().Compare(y.CreatedAt())
	})
	return out
}

func copyAuction(a *auction.Auction, refs []auction.BidRef) *auction.Auction {
	return auction.ReconstructAuction(
		a.ID(), a.VehicleID(), a.Region(), a.State(),
		a.StartingPrice(), a.ReservePrice(), a.CurrentPrice(), a.WinningBidderID(),
		a.StartTime(), a.EndTime(), a.Version(), refs, a.CreatedAt(), a.UpdatedAt(),
	)
}
