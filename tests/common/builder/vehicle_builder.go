//go:build unit || e2e

package builder

import (
	"time"

	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"
	reqdto "car-auction/internal/handler/dto/request"
	"car-auction/internal/usecase/queries"
)

type VehicleBuilder struct {
	Brand   string
	Model   string
	Year    int
	Type    vehicle.Type
	Region  region.Region
	Details vehicle.Details
	Now     time.Time
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		Brand:   "Toyota",
		Model:   "Camry",
		Year:    2022,
		Type:    vehicle.TypeSedan,
		Region:  region.USEast,
		Details: vehicle.Details{NumberOfDoors: 4, CargoCapacity: 428},
		Now:     time.Now().UTC(),
	}
}

func (b *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(b)
	return b
}

func (b *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	return vehicle.NewVehicle(b.Brand, b.Model, b.Year, b.Type, b.Region, b.Details, b.Now)
}

// BuildExisting panics on invalid builder state.
func (b *VehicleBuilder) BuildExisting() *vehicle.Vehicle {
	v, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return v
}

func (b *VehicleBuilder) BuildCreateRequestDTO() reqdto.CreateVehicleRequest {
	return reqdto.CreateVehicleRequest{
		Brand:  b.Brand,
		Model:  b.Model,
		Year:   b.Year,
		Type:   string(b.Type),
		Region: b.Region.String(),
		Details: reqdto.VehicleDetails{
			NumberOfDoors:    b.Details.NumberOfDoors,
			HasSunroof:       b.Details.HasSunroof,
			CargoCapacity:    b.Details.CargoCapacity,
			HasThirdRow:      b.Details.HasThirdRow,
			HasAllWheelDrive: b.Details.HasAllWheelDrive,
			BedSize:          b.Details.BedSize,
			CabType:          b.Details.CabType,
		},
	}
}

func (b *VehicleBuilder) BuildView() *queries.VehicleView {
	return queries.NewVehicleView(b.BuildExisting())
}

// Fluent builder methods
func (b *VehicleBuilder) AsTruck() *VehicleBuilder {
	b.Brand = "Ford"
	b.Model = "F-150"
	b.Type = vehicle.TypeTruck
	b.Details = vehicle.Details{BedSize: "6.5ft", CabType: "SuperCrew"}
	return b
}

func (b *VehicleBuilder) AsSUV() *VehicleBuilder {
	b.Brand = "Volvo"
	b.Model = "XC90"
	b.Type = vehicle.TypeSUV
	b.Details = vehicle.Details{NumberOfDoors: 5, HasThirdRow: true, HasAllWheelDrive: true, CargoCapacity: 1007}
	return b
}

func (b *VehicleBuilder) WithRegion(r region.Region) *VehicleBuilder {
	b.Region = r
	return b
}
