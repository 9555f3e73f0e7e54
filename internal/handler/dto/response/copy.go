package response

import (
	"fmt"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/domain/vehicle"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// copyOptions flattens domain value types into the plain strings responses carry.
var copyOptions = copier.Option{
	Converters: []copier.TypeConverter{
		stringConverter[uuid.UUID](),
		stringConverter[region.Region](),
		stringConverter[partition.Status](),
		stringConverter[vehicle.Type](),
	},
}

func stringConverter[T fmt.Stringer]() copier.TypeConverter {
	var zero T
	return copier.TypeConverter{
		SrcType: zero,
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			v, ok := src.(T)
			if !ok {
				return nil, fmt.Errorf("unexpected type %T", src)
			}
			return v.String(), nil
		},
	}
}
