package memstore

import (
	"context"
	"log/slog"
	"sync"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/vehicle"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
)

// Store keeps every aggregate in process memory. Entities are copied on the
// way in and out so callers never share state with the store.
type Store struct {
	logger *slog.Logger

	mu        sync.RWMutex
	auctions  map[uuid.UUID]*auction.Auction
	bids      map[uuid.UUID]*bid.Bid
	sequences map[uuid.UUID]int64
	events    map[uuid.UUID]*partition.Event
	vehicles  map[uuid.UUID]*vehicle.Vehicle

	// serializes Within blocks; single calls only take mu
	txMu sync.Mutex
}

func New(logger *slog.Logger) *Store {
	return &Store{
		logger:    logger,
		auctions:  make(map[uuid.UUID]*auction.Auction),
		bids:      make(map[uuid.UUID]*bid.Bid),
		sequences: make(map[uuid.UUID]int64),
		events:    make(map[uuid.UUID]*partition.Event),
		vehicles:  make(map[uuid.UUID]*vehicle.Vehicle),
	}
}

func (s *Store) Auctions() shared.AuctionRepository               { return &AuctionStore{s: s} }
func (s *Store) Bids() shared.BidRepository                       { return &BidStore{s: s} }
func (s *Store) PartitionEvents() shared.PartitionEventRepository { return &PartitionEventStore{s: s} }
func (s *Store) Vehicles() shared.VehicleRepository               { return &VehicleStore{s: s} }

// Within runs fn against the same store. Writes made before fn fails are
// not undone.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx, s)
}

// Reset drops all data. Tests use it between cases.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.auctions)
	clear(s.bids)
	clear(s.sequences)
	clear(s.events)
	clear(s.vehicles)
}
