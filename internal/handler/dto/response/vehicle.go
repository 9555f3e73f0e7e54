package response

import (
	"time"

	"car-auction/internal/domain/vehicle"
	"car-auction/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID               string     `json:"id"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	Year             int        `json:"year"`
	Type             string     `json:"type"`
	Region           string     `json:"region"`
	NumberOfDoors    int        `json:"number_of_doors,omitempty"`
	HasSunroof       bool       `json:"has_sunroof,omitempty"`
	CargoCapacity    float64    `json:"cargo_capacity,omitempty"`
	HasThirdRow      bool       `json:"has_third_row,omitempty"`
	HasAllWheelDrive bool       `json:"has_all_wheel_drive,omitempty"`
	BedSize          string     `json:"bed_size,omitempty"`
	CabType          string     `json:"cab_type,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func FromVehicleView(v *queries.VehicleView) (*VehicleResponse, error) {
	var res VehicleResponse
	if err := copier.CopyWithOption(&res, v, copyOptions); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromVehicle(v *vehicle.Vehicle) (*VehicleResponse, error) {
	return FromVehicleView(queries.NewVehicleView(v))
}

func FromVehicleViews(views []*queries.VehicleView) ([]*VehicleResponse, error) {
	res := make([]*VehicleResponse, 0, len(views))
	for _, v := range views {
		r, err := FromVehicleView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}
