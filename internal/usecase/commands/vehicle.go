package commands

import (
	"context"

	"car-auction/internal/domain/region"
	domvehicle "car-auction/internal/domain/vehicle"
	"car-auction/internal/infra"
	"car-auction/internal/pkg/clock"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/pkg/patch"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrVehicleInUse = errs.ErrVehicleInUse

type CreateVehicleRequest struct {
	Brand   string
	Model   string
	Year    int
	Type    domvehicle.Type
	Region  region.Region
	Details domvehicle.Details
}

// UpdateVehicleRequest leaves nil fields unchanged. The vehicle type is fixed.
type UpdateVehicleRequest struct {
	Brand   *string
	Model   *string
	Year    *int
	Region  *region.Region
	Details *domvehicle.Details
}

type VehicleCommands interface {
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domvehicle.Vehicle, error)
	UpdateVehicle(ctx context.Context, id uuid.UUID, req UpdateVehicleRequest) (*domvehicle.Vehicle, error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
}

type vehicleUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVehicleUseCase(uow shared.UnitOfWork, clk clock.Clock) VehicleCommands {
	return &vehicleUseCaseImpl{uow: uow, clock: clk}
}

func (uc *vehicleUseCaseImpl) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domvehicle.Vehicle, error) {
	v, err := domvehicle.NewVehicle(req.Brand, req.Model, req.Year, req.Type, req.Region, req.Details, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Vehicles().Create(ctx, v)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return v, nil
}

func (uc *vehicleUseCaseImpl) UpdateVehicle(ctx context.Context, id uuid.UUID, req UpdateVehicleRequest) (*domvehicle.Vehicle, error) {
	var updated *domvehicle.Vehicle
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := tx.Vehicles().Get(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}

		var p patch.Set
		brand := patch.Field(&p, req.Brand, v.Brand())
		model := patch.Field(&p, req.Model, v.Model())
		year := patch.Field(&p, req.Year, v.Year())
		r := patch.Field(&p, req.Region, v.Region())
		details := patch.Field(&p, req.Details, v.Details())
		if !p.Changed() {
			updated = v
			return nil
		}

		if err := v.Update(brand, model, year, r, details, uc.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Vehicles().Update(ctx, v); err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrVehicleNotFound) || errs.Is(err, errs.ErrDomainValidation) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return updated, nil
}

func (uc *vehicleUseCaseImpl) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Delete(ctx, id)
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return ErrVehicleNotFound
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return ErrVehicleInUse
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
