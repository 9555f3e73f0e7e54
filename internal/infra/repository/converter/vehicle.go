package converter

import (
	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VehicleRow struct {
	ID               uuid.UUID
	Brand            string
	Model            string
	Year             int32
	VehicleType      string
	Region           string
	NumberOfDoors    int32
	HasSunroof       bool
	CargoCapacity    float64
	HasThirdRow      bool
	HasAllWheelDrive bool
	BedSize          string
	CabType          string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func (r *VehicleRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.Brand, &r.Model, &r.Year, &r.VehicleType, &r.Region,
		&r.NumberOfDoors, &r.HasSunroof, &r.CargoCapacity, &r.HasThirdRow, &r.HasAllWheelDrive,
		&r.BedSize, &r.CabType, &r.CreatedAt, &r.UpdatedAt,
	}
}

// Args returns the insert parameters in VehicleColumns order.
func (r VehicleRow) Args() []any {
	return []any{
		r.ID, r.Brand, r.Model, r.Year, r.VehicleType, r.Region,
		r.NumberOfDoors, r.HasSunroof, r.CargoCapacity, r.HasThirdRow, r.HasAllWheelDrive,
		r.BedSize, r.CabType, r.CreatedAt, r.UpdatedAt,
	}
}

const VehicleColumns = `id, brand, model, year, vehicle_type, region,
	number_of_doors, has_sunroof, cargo_capacity, has_third_row, has_all_wheel_drive,
	bed_size, cab_type, created_at, updated_at`

func VehicleToRow(v *vehicle.Vehicle) VehicleRow {
	d := v.Details()
	return VehicleRow{
		ID:               v.ID(),
		Brand:            v.Brand(),
		Model:            v.Model(),
		Year:             pgconv.IntToInt32(v.Year()),
		VehicleType:      v.Type().String(),
		Region:           v.Region().String(),
		NumberOfDoors:    pgconv.IntToInt32(d.NumberOfDoors),
		HasSunroof:       d.HasSunroof,
		CargoCapacity:    d.CargoCapacity,
		HasThirdRow:      d.HasThirdRow,
		HasAllWheelDrive: d.HasAllWheelDrive,
		BedSize:          d.BedSize,
		CabType:          d.CabType,
		CreatedAt:        pgconv.TimeToPgtype(v.CreatedAt()),
		UpdatedAt:        pgconv.TimePtrToPgtype(v.UpdatedAt()),
	}
}

func VehicleFromRow(r VehicleRow) *vehicle.Vehicle {
	return vehicle.ReconstructVehicle(
		r.ID, r.Brand, r.Model, int(r.Year),
		vehicle.Type(r.VehicleType),
		region.Region(r.Region),
		vehicle.Details{
			NumberOfDoors:    int(r.NumberOfDoors),
			HasSunroof:       r.HasSunroof,
			CargoCapacity:    r.CargoCapacity,
			HasThirdRow:      r.HasThirdRow,
			HasAllWheelDrive: r.HasAllWheelDrive,
			BedSize:          r.BedSize,
			CabType:          r.CabType,
		},
		pgconv.TimeFromPgtype(r.CreatedAt),
		pgconv.TimePtrFromPgtype(r.UpdatedAt),
	)
}
