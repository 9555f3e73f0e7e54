package queries

import (
	"context"

	"car-auction/internal/domain/region"
	"car-auction/internal/infra"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.ErrVehicleNotFound

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context, r *region.Region) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	repo shared.VehicleRepository
}

func NewVehicleQueries(repo shared.VehicleRepository) VehicleQueries {
	return &vehicleQueriesImpl{repo: repo}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	v, err := q.repo.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return NewVehicleView(v), nil
}

// List filters by region when r is non-nil.
func (q *vehicleQueriesImpl) List(ctx context.Context, r *region.Region) ([]*VehicleView, error) {
	if r != nil && !r.IsValid() {
		return nil, errs.Wrapf(region.ErrUnknownRegion, "region %q", *r)
	}
	vs, err := q.repo.List(ctx, r)
	if err != nil {
		return nil, err
	}
	out := make([]*VehicleView, 0, len(vs))
	for _, v := range vs {
		out = append(out, NewVehicleView(v))
	}
	return out, nil
}
