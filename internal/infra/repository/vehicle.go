package repository

import (
	"context"
	"log/slog"

	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"
	"car-auction/internal/infra"
	"car-auction/internal/infra/db"
	"car-auction/internal/infra/repository/converter"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type VehicleRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewVehicleRepository(dbtx db.DBTX, logger *slog.Logger) *VehicleRepository {
	return &VehicleRepository{db: dbtx, logger: logger}
}

func (r *VehicleRepository) Get(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	var row converter.VehicleRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.VehicleColumns+` FROM vehicles WHERE id = $1`, id).
		Scan(row.ScanTargets()...)
	if err != nil {
		return nil, wrapPgErr(r.logger, "vehicle not found", err)
	}
	return converter.VehicleFromRow(row), nil
}

func (r *VehicleRepository) List(ctx context.Context, rg *region.Region) ([]*vehicle.Vehicle, error) {
	var filter *string
	if rg != nil {
		s := rg.String()
		filter = &s
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.VehicleColumns+`
		FROM vehicles
		WHERE $1::text IS NULL OR region = $1
		ORDER BY created_at`, pgconv.StringPtrToPgtype(filter))
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to list vehicles", err)
	}
	vehicleRows, err := collectRows(rows, func(vr *converter.VehicleRow) []any { return vr.ScanTargets() })
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to scan vehicles", err)
	}

	out := make([]*vehicle.Vehicle, 0, len(vehicleRows))
	for _, vr := range vehicleRows {
		out = append(out, converter.VehicleFromRow(vr))
	}
	return out, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) (uuid.UUID, error) {
	row := converter.VehicleToRow(v)
	_, err := r.db.Exec(ctx, `
		INSERT INTO vehicles (`+converter.VehicleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		row.Args()...,
	)
	if err != nil {
		return uuid.Nil, wrapPgErr(r.logger, "failed to create vehicle", err)
	}
	return row.ID, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	row := converter.VehicleToRow(v)
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET brand = $2, model = $3, year = $4, region = $5,
		    number_of_doors = $6, has_sunroof = $7, cargo_capacity = $8, has_third_row = $9,
		    has_all_wheel_drive = $10, bed_size = $11, cab_type = $12, updated_at = $13
		WHERE id = $1`,
		row.ID, row.Brand, row.Model, row.Year, row.Region,
		row.NumberOfDoors, row.HasSunroof, row.CargoCapacity, row.HasThirdRow,
		row.HasAllWheelDrive, row.BedSize, row.CabType, row.UpdatedAt,
	)
	if err != nil {
		return wrapPgErr(r.logger, "failed to update vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "vehicle not found", nil)
	}
	return nil
}

// Delete fails with a foreign key error while an auction still references the vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return wrapPgErr(r.logger, "failed to delete vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "vehicle not found", nil)
	}
	return nil
}
