package region

import (
	"context"
	"time"

	"car-auction/internal/pkg/errs"
)

var ErrUnknownRegion = errs.New("unknown region")

type Region string

const (
	USEast Region = "USEast"
	EUWest Region = "EUWest"
)

// zone names are IANA equivalents of the regions' local business time
var zones = map[Region]string{
	USEast: "America/New_York",
	EUWest: "Europe/Berlin",
}

func (r Region) String() string {
	return string(r)
}

func (r Region) IsValid() bool {
	switch r {
	case USEast, EUWest:
		return true
	default:
		return false
	}
}

// All returns the known regions in a stable order.
func All() []Region {
	return []Region{USEast, EUWest}
}

func Parse(s string) (Region, error) {
	r := Region(s)
	if !r.IsValid() {
		return "", errs.Wrapf(ErrUnknownRegion, "parse %q", s)
	}
	return r, nil
}

// Location falls back to UTC when the zone database is unavailable.
func (r Region) Location() *time.Location {
	name, ok := zones[r]
	if !ok {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalTime expresses t in the region's local time.
func (r Region) LocalTime(t time.Time) time.Time {
	return t.In(r.Location())
}

type callerKey struct{}

// WithCaller records the region the current request is issued from.
func WithCaller(ctx context.Context, r Region) context.Context {
	return context.WithValue(ctx, callerKey{}, r)
}

func CallerFrom(ctx context.Context) (Region, bool) {
	r, ok := ctx.Value(callerKey{}).(Region)
	if !ok || !r.IsValid() {
		return "", false
	}
	return r, true
}
