package memstore

import (
	"context"
	"slices"

	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"
	"car-auction/internal/infra"

	"github.com/google/uuid"
)

type VehicleStore struct {
	s *Store
}

func (r *VehicleStore) Get(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "vehicle not found", nil)
	}
	return copyVehicle(v), nil
}

func (r *VehicleStore) List(ctx context.Context, rg *region.Region) ([]*vehicle.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*vehicle.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		if rg == nil || v.Region() == *rg {
			out = append(out, copyVehicle(v))
		}
	}
	slices.SortFunc(out, func(a, b *vehicle.Vehicle) int { return a.CreatedAt().Compare(b.CreatedAt()) })
	return out, nil
}

func (r *VehicleStore) Create(ctx context.Context, v *vehicle.Vehicle) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.vehicles[v.ID()]; exists {
		return uuid.Nil, infra.WrapRepoErr(r.s.logger, infra.KindDuplicateKey, "vehicle already exists", nil)
	}
	r.s.vehicles[v.ID()] = copyVehicle(v)
	return v.ID(), nil
}

func (r *VehicleStore) Update(ctx context.Context, v *vehicle.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vehicles[v.ID()]; !ok {
		return infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "vehicle not found", nil)
	}
	r.s.vehicles[v.ID()] = copyVehicle(v)
	return nil
}

func (r *VehicleStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vehicles[id]; !ok {
		return infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "vehicle not found", nil)
	}
	for _, a := range r.s.auctions {
		if a.VehicleID() == id {
			return infra.WrapRepoErr(r.s.logger, infra.KindForeignKeyViolated, "vehicle is referenced by an auction", nil)
		}
	}
	delete(r.s.vehicles, id)
	return nil
}

func copyVehicle(v *vehicle.Vehicle) *vehicle.Vehicle {
	return vehicle.ReconstructVehicle(
		v.ID(), v.Brand(), v.Model(), v.Year(), v.Type(), v.Region(), v.Details(),
		v.CreatedAt(), copyTime(v.UpdatedAt()),
	)
}
