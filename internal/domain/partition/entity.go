package partition

import (
	"time"

	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errs.New("invalid partition status transition")
	ErrInvalidRegion     = errs.New("partition region is invalid")
)

// Event is one partition incident between a bidding region and an
// auction's home region.
type Event struct {
	id              uuid.UUID
	originBidRegion region.Region
	auctionRegion   region.Region
	status          Status
	createdAt       time.Time
	updatedAt       *time.Time
	endTime         *time.Time
}

// NewEvent opens an incident in the Partitioned state.
func NewEvent(origin, auctionRegion region.Region, now time.Time) (*Event, error) {
	if !origin.IsValid() || !auctionRegion.IsValid() {
		return nil, ErrInvalidRegion
	}
	e := &Event{
		id:              uuid.New(),
		originBidRegion: origin,
		auctionRegion:   auctionRegion,
		status:          StatusHealthy,
		createdAt:       now,
	}
	if err := e.StartPartition(now); err != nil {
		return nil, err
	}
	return e, nil
}

func ReconstructEvent(
	id uuid.UUID,
	origin, auctionRegion region.Region,
	status Status,
	createdAt time.Time,
	updatedAt, endTime *time.Time,
) *Event {
	return &Event{
		id:              id,
		originBidRegion: origin,
		auctionRegion:   auctionRegion,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		endTime:         endTime,
	}
}

func (e *Event) ID() uuid.UUID                  { return e.id }
func (e *Event) OriginBidRegion() region.Region { return e.originBidRegion }
func (e *Event) AuctionRegion() region.Region   { return e.auctionRegion }
func (e *Event) Status() Status                 { return e.status }
func (e *Event) CreatedAt() time.Time           { return e.createdAt }
func (e *Event) UpdatedAt() *time.Time          { return e.updatedAt }
func (e *Event) EndTime() *time.Time            { return e.endTime }
func (e *Event) IsActive() bool                 { return e.status.IsActive() }

// StartPartition is also how a failed reconciliation reverts.
func (e *Event) StartPartition(now time.Time) error {
	if e.status != StatusHealthy && e.status != StatusReconciling {
		return e.transitionError(StatusPartitioned)
	}
	e.status = StatusPartitioned
	e.touch(now)
	return nil
}

func (e *Event) BeginReconciliation(now time.Time) error {
	if e.status != StatusPartitioned {
		return e.transitionError(StatusReconciling)
	}
	e.status = StatusReconciling
	e.touch(now)
	return nil
}

func (e *Event) Resolve(now time.Time) error {
	if e.status != StatusReconciling {
		return e.transitionError(StatusResolved)
	}
	e.status = StatusResolved
	end := now
	e.endTime = &end
	e.touch(now)
	return nil
}

func (e *Event) ResetToHealthy(now time.Time) {
	e.status = StatusHealthy
	e.endTime = nil
	e.touch(now)
}

// TransitionTo drives the event to target through the matching transition.
func (e *Event) TransitionTo(target Status, now time.Time) error {
	switch target {
	case StatusHealthy:
		e.ResetToHealthy(now)
		return nil
	case StatusPartitioned:
		return e.StartPartition(now)
	case StatusReconciling:
		return e.BeginReconciliation(now)
	case StatusResolved:
		return e.Resolve(now)
	default:
		return errs.Wrapf(ErrUnknownStatus, "target %q", target)
	}
}

func (e *Event) touch(now time.Time) {
	t := now
	e.updatedAt = &t
}

func (e *Event) transitionError(to Status) error {
	return errs.Wrapf(ErrInvalidTransition, "%s -> %s", e.status, to)
}
