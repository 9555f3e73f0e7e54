package vehicle

import (
	"errors"
	"strings"
	"time"

	"car-auction/internal/domain/region"

	"github.com/google/uuid"
)

var (
	ErrEmptyBrand       = errors.New("brand cannot be empty")
	ErrEmptyModel       = errors.New("model cannot be empty")
	ErrInvalidYear      = errors.New("year is out of range")
	ErrInvalidType      = errors.New("vehicle type is invalid")
	ErrInvalidRegion    = errors.New("vehicle region is invalid")
	ErrInvalidDoors     = errors.New("number of doors is out of range")
	ErrNegativeCapacity = errors.New("cargo capacity cannot be negative")
	ErrMissingTruckSpec = errors.New("truck requires bed size and cab type")
)

const (
	MinYear  = 1886
	MaxDoors = 6
)

type Vehicle struct {
	id        uuid.UUID
	brand     string
	model     string
	year      int
	vtype     Type
	region    region.Region
	details   Details
	createdAt time.Time
	updatedAt *time.Time
}

func NewVehicle(brand, model string, year int, t Type, r region.Region, d Details, now time.Time) (*Vehicle, error) {
	v := &Vehicle{
		id:        uuid.New(),
		brand:     strings.TrimSpace(brand),
		model:     strings.TrimSpace(model),
		year:      year,
		vtype:     t,
		region:    r,
		details:   normalize(t, d),
		createdAt: now,
	}
	if err := v.validate(now); err != nil {
		return nil, err
	}
	return v, nil
}

func ReconstructVehicle(
	id uuid.UUID,
	brand, model string,
	year int,
	t Type,
	r region.Region,
	d Details,
	createdAt time.Time,
	updatedAt *time.Time,
) *Vehicle {
	return &Vehicle{
		id:        id,
		brand:     brand,
		model:     model,
		year:      year,
		vtype:     t,
		region:    r,
		details:   d,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (v *Vehicle) ID() uuid.UUID         { return v.id }
func (v *Vehicle) Brand() string         { return v.brand }
func (v *Vehicle) Model() string         { return v.model }
func (v *Vehicle) Year() int             { return v.year }
func (v *Vehicle) Type() Type            { return v.vtype }
func (v *Vehicle) Region() region.Region { return v.region }
func (v *Vehicle) Details() Details      { return v.details }
func (v *Vehicle) CreatedAt() time.Time  { return v.createdAt }
func (v *Vehicle) UpdatedAt() *time.Time { return v.updatedAt }

// Update replaces the common attributes and type details, keeping the type.
func (v *Vehicle) Update(brand, model string, year int, r region.Region, d Details, now time.Time) error {
	next := *v
	next.brand = strings.TrimSpace(brand)
	next.model = strings.TrimSpace(model)
	next.year = year
	next.region = r
	next.details = normalize(v.vtype, d)
	if err := next.validate(now); err != nil {
		return err
	}
	t := now
	next.updatedAt = &t
	*v = next
	return nil
}

func (v *Vehicle) validate(now time.Time) error {
	if v.brand == "" {
		return ErrEmptyBrand
	}
	if v.model == "" {
		return ErrEmptyModel
	}
	if v.year < MinYear || v.year > now.Year()+1 {
		return ErrInvalidYear
	}
	if !v.vtype.IsValid() {
		return ErrInvalidType
	}
	if !v.region.IsValid() {
		return ErrInvalidRegion
	}
	return validateDetails(v.vtype, v.details)
}

func validateDetails(t Type, d Details) error {
	switch t {
	case TypeSedan, TypeHatchback, TypeSUV:
		if d.NumberOfDoors < 2 || d.NumberOfDoors > MaxDoors {
			return ErrInvalidDoors
		}
		if d.CargoCapacity < 0 {
			return ErrNegativeCapacity
		}
	case TypeTruck:
		if d.BedSize == "" || d.CabType == "" {
			return ErrMissingTruckSpec
		}
	}
	return nil
}

// normalize drops attributes that do not belong to t.
func normalize(t Type, d Details) Details {
	switch t {
	case TypeSedan, TypeHatchback:
		return Details{NumberOfDoors: d.NumberOfDoors, HasSunroof: d.HasSunroof, CargoCapacity: d.CargoCapacity}
	case TypeSUV:
		return Details{
			NumberOfDoors:    d.NumberOfDoors,
			HasSunroof:       d.HasSunroof,
			CargoCapacity:    d.CargoCapacity,
			HasThirdRow:      d.HasThirdRow,
			HasAllWheelDrive: d.HasAllWheelDrive,
		}
	case TypeTruck:
		return Details{BedSize: strings.TrimSpace(d.BedSize), CabType: strings.TrimSpace(d.CabType)}
	default:
		return d
	}
}
