package vehicle

type Type string

const (
	TypeSedan     Type = "Sedan"
	TypeHatchback Type = "Hatchback"
	TypeSUV       Type = "SUV"
	TypeTruck     Type = "Truck"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeSedan, TypeHatchback, TypeSUV, TypeTruck:
		return true
	default:
		return false
	}
}

// Details holds the type-specific attributes. Fields that do not apply to
// a vehicle's type are zero.
type Details struct {
	NumberOfDoors    int
	HasSunroof       bool
	CargoCapacity    float64
	HasThirdRow      bool
	HasAllWheelDrive bool
	BedSize          string
	CabType          string
}
