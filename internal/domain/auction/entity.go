package auction

import (
	"slices"
	"time"

	"car-auction/internal/domain/bid"
	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition    = errs.New("invalid auction state transition")
	ErrNotActive            = errs.New("auction is not active")
	ErrBidTooLow            = errs.New("bid amount must exceed current price")
	ErrBidAuctionMismatch   = errs.New("bid belongs to another auction")
	ErrInvalidRegion        = errs.New("auction region is invalid")
	ErrInvalidStartingPrice = errs.New("starting price must be positive")
	ErrInvalidReservePrice  = errs.New("reserve price must not be below starting price")
	ErrInvalidSchedule      = errs.New("end time must be after start time")
	ErrMissingVehicle       = errs.New("vehicle id is required")
)

// BidRef is what the auction keeps of a bid applied to it. Full records
// live in the bid store.
type BidRef struct {
	ID        uuid.UUID
	BidderID  uuid.UUID
	Amount    decimal.Decimal
	Sequence  int64
	CreatedAt time.Time
	Accepted  bool
}

func RefOf(b *bid.Bid) BidRef {
	return BidRef{
		ID:        b.ID(),
		BidderID:  b.BidderID(),
		Amount:    b.Amount(),
		Sequence:  b.Sequence(),
		CreatedAt: b.CreatedAt(),
		Accepted:  b.IsAccepted(),
	}
}

type Auction struct {
	id              uuid.UUID
	vehicleID       uuid.UUID
	region          region.Region
	state           State
	startingPrice   decimal.Decimal
	reservePrice    *decimal.Decimal
	currentPrice    decimal.Decimal
	winningBidderID *uuid.UUID
	startTime       time.Time
	endTime         time.Time
	version         int64
	originalVersion int64
	bids            []BidRef
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAuction(
	vehicleID uuid.UUID,
	r region.Region,
	startingPrice decimal.Decimal,
	reservePrice *decimal.Decimal,
	startTime, endTime time.Time,
	now time.Time,
) (*Auction, error) {
	if vehicleID == uuid.Nil {
		return nil, ErrMissingVehicle
	}
	if !r.IsValid() {
		return nil, ErrInvalidRegion
	}
	if !startingPrice.IsPositive() {
		return nil, ErrInvalidStartingPrice
	}
	if reservePrice != nil && reservePrice.LessThan(startingPrice) {
		return nil, ErrInvalidReservePrice
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidSchedule
	}

	return &Auction{
		id:            uuid.New(),
		vehicleID:     vehicleID,
		region:        r,
		state:         StateDraft,
		startingPrice: startingPrice,
		reservePrice:  reservePrice,
		currentPrice:  startingPrice,
		startTime:     startTime,
		endTime:       endTime,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructAuction(
	id, vehicleID uuid.UUID,
	r region.Region,
	state State,
	startingPrice decimal.Decimal,
	reservePrice *decimal.Decimal,
	currentPrice decimal.Decimal,
	winningBidderID *uuid.UUID,
	startTime, endTime time.Time,
	version int64,
	bids []BidRef,
	createdAt, updatedAt time.Time,
) *Auction {
	return &Auction{
		id:              id,
		vehicleID:       vehicleID,
		region:          r,
		state:           state,
		startingPrice:   startingPrice,
		reservePrice:    reservePrice,
		currentPrice:    currentPrice,
		winningBidderID: winningBidderID,
		startTime:       startTime,
		endTime:         endTime,
		version:         version,
		originalVersion: version,
		bids:            slices.Clone(bids),
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (a *Auction) ID() uuid.UUID                  { return a.id }
func (a *Auction) VehicleID() uuid.UUID           { return a.vehicleID }
func (a *Auction) Region() region.Region          { return a.region }
func (a *Auction) State() State                   { return a.state }
func (a *Auction) StartingPrice() decimal.Decimal { return a.startingPrice }
func (a *Auction) ReservePrice() *decimal.Decimal { return a.reservePrice }
func (a *Auction) CurrentPrice() decimal.Decimal  { return a.currentPrice }
func (a *Auction) WinningBidderID() *uuid.UUID    { return a.winningBidderID }
func (a *Auction) StartTime() time.Time           { return a.startTime }
func (a *Auction) EndTime() time.Time             { return a.endTime }
func (a *Auction) Version() int64                 { return a.version }
func (a *Auction) CreatedAt() time.Time           { return a.createdAt }
func (a *Auction) UpdatedAt() time.Time           { return a.updatedAt }
func (a *Auction) Bids() []BidRef                 { return slices.Clone(a.bids) }

// OriginalVersion is the version the auction had when it was loaded or
// last persisted. Stores compare it against the stored row.
func (a *Auction) OriginalVersion() int64 { return a.originalVersion }

// Persisted marks the current version as stored. Call it once the write has committed.
func (a *Auction) Persisted() {
	a.originalVersion = a.version
}

func (a *Auction) HasBid(id uuid.UUID) bool {
	return slices.ContainsFunc(a.bids, func(r BidRef) bool { return r.ID == id })
}

// LeadingBid returns the accepted bid currently holding the price, if any.
func (a *Auction) LeadingBid() (BidRef, bool) {
	if a.winningBidderID == nil {
		return BidRef{}, false
	}
	var (
		lead  BidRef
		found bool
	)
	for _, r := range a.bids {
		if !r.Accepted || r.BidderID != *a.winningBidderID || !r.Amount.Equal(a.currentPrice) {
			continue
		}
		if !found || r.Sequence > lead.Sequence {
			lead, found = r, true
		}
	}
	return lead, found
}

// IsPastDue evaluates the deadline against the current time in the auction's region.
func (a *Auction) IsPastDue(now time.Time) bool {
	return a.region.LocalTime(now).After(a.endTime)
}

func (a *Auction) Start(now time.Time) error {
	if a.state != StateDraft {
		return a.transitionError(StateActive)
	}
	a.state = StateActive
	a.currentPrice = a.startingPrice
	a.touch(now)
	return nil
}

func (a *Auction) Pause(now time.Time) error {
	if a.state != StateActive {
		return a.transitionError(StatePaused)
	}
	a.state = StatePaused
	a.touch(now)
	return nil
}

func (a *Auction) Resume(now time.Time) error {
	if a.state != StatePaused {
		return a.transitionError(StateActive)
	}
	a.state = StateActive
	a.touch(now)
	return nil
}

func (a *Auction) End(now time.Time) error {
	if a.state != StateActive && a.state != StatePaused {
		return a.transitionError(StateEnded)
	}
	a.state = StateEnded
	a.touch(now)
	return nil
}

func (a *Auction) Cancel(now time.Time) error {
	if a.state.IsTerminal() {
		return a.transitionError(StateCancelled)
	}
	a.state = StateCancelled
	a.touch(now)
	return nil
}

// Settle ends a past-due auction and resumes any other paused one.
func (a *Auction) Settle(now time.Time) error {
	if a.IsPastDue(now) {
		return a.End(now)
	}
	return a.Resume(now)
}

// TryPlaceBid applies b to the price ratchet. The auction must be active
// and b must exceed the current price.
func (a *Auction) TryPlaceBid(b *bid.Bid, now time.Time) error {
	if a.state != StateActive {
		return errs.Wrapf(ErrNotActive, "state %s", a.state)
	}
	if b.AuctionID() != a.id {
		return ErrBidAuctionMismatch
	}
	if !b.Amount().GreaterThan(a.currentPrice) {
		return ErrBidTooLow
	}
	a.raise(b, now)
	return nil
}

// UpdateWinningBid installs the winner of a reconciliation. The price
// still only moves upward.
func (a *Auction) UpdateWinningBid(b *bid.Bid, now time.Time) error {
	if b.AuctionID() != a.id {
		return ErrBidAuctionMismatch
	}
	if !b.Amount().GreaterThan(a.currentPrice) {
		return ErrBidTooLow
	}
	a.raise(b, now)
	return nil
}

func (a *Auction) raise(b *bid.Bid, now time.Time) {
	bidder := b.BidderID()
	a.currentPrice = b.Amount()
	a.winningBidderID = &bidder

	ref := RefOf(b)
	ref.Accepted = true
	if i := slices.IndexFunc(a.bids, func(r BidRef) bool { return r.ID == ref.ID }); i >= 0 {
		a.bids[i] = ref
	} else {
		a.bids = append(a.bids, ref)
	}
	a.touch(now)
}

func (a *Auction) touch(now time.Time) {
	a.version++
	a.updatedAt = now
}

func (a *Auction) transitionError(to State) error {
	return errs.Wrapf(ErrInvalidTransition, "%s -> %s", a.state, to)
}
