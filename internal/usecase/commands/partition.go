package commands

import (
	"context"
	"log/slog"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/coordinator"
)

var (
	ErrNoActivePartition = coordinator.ErrNoActivePartition
	ErrInvalidDuration   = errs.New("partition duration must not be negative")
)

// PartitionSimulator is the fault-injection surface behind the partition endpoints.
type PartitionSimulator interface {
	SimulatePartition(ctx context.Context, origin, auctionRegion region.Region, d time.Duration) (*partition.Event, error)
	HealPartition(ctx context.Context) error
	HealPartitionByRegion(ctx context.Context, auctionRegion region.Region) error
	SetCurrentRegion(r region.Region) error
}

type PartitionStatusUpdater interface {
	UpdatePartitionByAuctionRegion(ctx context.Context, auctionRegion region.Region, target partition.Status) (*partition.Event, error)
}

type SimulatePartitionRequest struct {
	OriginRegion  region.Region
	AuctionRegion region.Region
	Duration      time.Duration
}

type PartitionCommands interface {
	SimulatePartition(ctx context.Context, req SimulatePartitionRequest) (*partition.Event, error)
	HealAll(ctx context.Context) error
	HealRegion(ctx context.Context, auctionRegion region.Region) error
	UpdateStatus(ctx context.Context, auctionRegion region.Region, target partition.Status) (*partition.Event, error)
	SetDefaultRegion(ctx context.Context, r region.Region) error
}

type partitionUseCaseImpl struct {
	sim         PartitionSimulator
	updater     PartitionStatusUpdater
	defaultHeal time.Duration
	logger      *slog.Logger
}

// NewPartitionUseCase uses defaultHeal for requests that carry no duration.
func NewPartitionUseCase(sim PartitionSimulator, updater PartitionStatusUpdater, defaultHeal time.Duration, logger *slog.Logger) PartitionCommands {
	return &partitionUseCaseImpl{
		sim:         sim,
		updater:     updater,
		defaultHeal: defaultHeal,
		logger:      logger,
	}
}

func (uc *partitionUseCaseImpl) SimulatePartition(ctx context.Context, req SimulatePartitionRequest) (*partition.Event, error) {
	if !req.OriginRegion.IsValid() || !req.AuctionRegion.IsValid() {
		return nil, errs.Wrapf(region.ErrUnknownRegion, "%q -> %q", req.OriginRegion, req.AuctionRegion)
	}
	d := req.Duration
	if d < 0 {
		return nil, errs.Wrapf(ErrInvalidDuration, "got %s", d)
	}
	if d == 0 {
		d = uc.defaultHeal
	}
	return uc.sim.SimulatePartition(ctx, req.OriginRegion, req.AuctionRegion, d)
}

func (uc *partitionUseCaseImpl) HealAll(ctx context.Context) error {
	return uc.sim.HealPartition(ctx)
}

func (uc *partitionUseCaseImpl) HealRegion(ctx context.Context, auctionRegion region.Region) error {
	if !auctionRegion.IsValid() {
		return region.ErrUnknownRegion
	}
	return uc.sim.HealPartitionByRegion(ctx, auctionRegion)
}

func (uc *partitionUseCaseImpl) UpdateStatus(ctx context.Context, auctionRegion region.Region, target partition.Status) (*partition.Event, error) {
	e, err := uc.updater.UpdatePartitionByAuctionRegion(ctx, auctionRegion, target)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("Partition status updated",
		"auction_region", auctionRegion,
		"status", e.Status(),
		"event_id", e.ID())
	return e, nil
}

func (uc *partitionUseCaseImpl) SetDefaultRegion(ctx context.Context, r region.Region) error {
	if err := uc.sim.SetCurrentRegion(r); err != nil {
		return err
	}
	uc.logger.Info("Default caller region changed", "region", r)
	return nil
}
