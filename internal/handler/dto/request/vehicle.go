package request

import (
	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"
	"car-auction/internal/usecase/commands"
)

type VehicleDetails struct {
	NumberOfDoors    int     `json:"number_of_doors" binding:"gte=0"`
	HasSunroof       bool    `json:"has_sunroof"`
	CargoCapacity    float64 `json:"cargo_capacity" binding:"gte=0"`
	HasThirdRow      bool    `json:"has_third_row"`
	HasAllWheelDrive bool    `json:"has_all_wheel_drive"`
	BedSize          string  `json:"bed_size"`
	CabType          string  `json:"cab_type"`
}

func (d VehicleDetails) toDomain() vehicle.Details {
	return vehicle.Details{
		NumberOfDoors:    d.NumberOfDoors,
		HasSunroof:       d.HasSunroof,
		CargoCapacity:    d.CargoCapacity,
		HasThirdRow:      d.HasThirdRow,
		HasAllWheelDrive: d.HasAllWheelDrive,
		BedSize:          d.BedSize,
		CabType:          d.CabType,
	}
}

type CreateVehicleRequest struct {
	Brand   string         `json:"brand" binding:"required,max=100"`
	Model   string         `json:"model" binding:"required,max=100"`
	Year    int            `json:"year" binding:"required,min=1886,max=2100"`
	Type    string         `json:"type" binding:"required,oneof=Sedan Hatchback SUV Truck"`
	Region  string         `json:"region" binding:"required"`
	Details VehicleDetails `json:"details"`
}

func (r CreateVehicleRequest) ToCommand() (commands.CreateVehicleRequest, error) {
	rg, err := region.Parse(r.Region)
	if err != nil {
		return commands.CreateVehicleRequest{}, err
	}
	return commands.CreateVehicleRequest{
		Brand:   r.Brand,
		Model:   r.Model,
		Year:    r.Year,
		Type:    vehicle.Type(r.Type),
		Region:  rg,
		Details: r.Details.toDomain(),
	}, nil
}

// UpdateVehicleRequest keeps omitted fields. Details replace the stored set as a whole.
type UpdateVehicleRequest struct {
	Brand   *string         `json:"brand" binding:"omitempty,max=100"`
	Model   *string         `json:"model" binding:"omitempty,max=100"`
	Year    *int            `json:"year" binding:"omitempty,min=1886,max=2100"`
	Region  *string         `json:"region"`
	Details *VehicleDetails `json:"details"`
}

func (r UpdateVehicleRequest) ToCommand() (commands.UpdateVehicleRequest, error) {
	cmd := commands.UpdateVehicleRequest{
		Brand: r.Brand,
		Model: r.Model,
		Year:  r.Year,
	}
	if r.Region != nil {
		rg, err := region.Parse(*r.Region)
		if err != nil {
			return commands.UpdateVehicleRequest{}, err
		}
		cmd.Region = &rg
	}
	if r.Details != nil {
		d := r.Details.toDomain()
		cmd.Details = &d
	}
	return cmd, nil
}
