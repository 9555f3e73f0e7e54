package repository

import (
	"log/slog"

	"car-auction/internal/infra/db"
	"car-auction/internal/usecase/shared"
)

// Store exposes the repositories over a single connection handle. Over the
// pool each call runs in its own implicit transaction.
type Store struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewStore(dbtx db.DBTX, logger *slog.Logger) *Store {
	return &Store{db: dbtx, logger: logger}
}

func (s *Store) Auctions() shared.AuctionRepository {
	return NewAuctionRepository(s.db, s.logger)
}

func (s *Store) Bids() shared.BidRepository {
	return NewBidRepository(s.db, s.logger)
}

func (s *Store) PartitionEvents() shared.PartitionEventRepository {
	return NewPartitionEventRepository(s.db, s.logger)
}

func (s *Store) Vehicles() shared.VehicleRepository {
	return NewVehicleRepository(s.db, s.logger)
}
