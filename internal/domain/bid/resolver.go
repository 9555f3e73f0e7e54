package bid

import (
	"bytes"
	"cmp"
	"slices"

	"car-auction/internal/domain/region"
)

const (
	ReasonLostRegional = "Lost in regional conflict resolution"
	ReasonLostGlobal   = "Lost in global conflict resolution"
)

// Outcome is the result of one resolution pass: the bid that won it, if
// any, and every bid whose status the pass changed.
type Outcome struct {
	Winner  *Bid
	Changed []*Bid
}

// ConflictResolver merges bids that isolated regions accepted independently.
// Both passes are pure apart from mutating the status of the bids they are given.
type ConflictResolver struct{}

func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{}
}

// ResolveRegionalConflicts accepts the earliest bid originating in r and
// rejects every other bid from r. Bids from other regions are not touched.
func (ConflictResolver) ResolveRegionalConflicts(bids []*Bid, r region.Region) Outcome {
	local := make([]*Bid, 0, len(bids))
	for _, b := range bids {
		if b.OriginRegion() == r {
			local = append(local, b)
		}
	}
	if len(local) == 0 {
		return Outcome{}
	}

	slices.SortStableFunc(local, byArrival)

	var out Outcome
	out.Winner = local[0]
	if local[0].Accept() {
		out.Changed = append(out.Changed, local[0])
	}
	for _, b := range local[1:] {
		if b.Reject(ReasonLostRegional) {
			out.Changed = append(out.Changed, b)
		}
	}
	return out
}

// DetermineFinalWinner picks the highest accepted bid, earliest first on
// equal amounts, and rejects the other accepted candidates. Rejected and
// pending bids are never selected.
func (ConflictResolver) DetermineFinalWinner(bids []*Bid) Outcome {
	accepted := make([]*Bid, 0, len(bids))
	for _, b := range bids {
		if b.IsAccepted() {
			accepted = append(accepted, b)
		}
	}
	if len(accepted) == 0 {
		return Outcome{}
	}

	slices.SortStableFunc(accepted, byValue)

	var out Outcome
	out.Winner = accepted[0]
	if accepted[0].Accept() {
		out.Changed = append(out.Changed, accepted[0])
	}
	for _, b := range accepted[1:] {
		if b.Reject(ReasonLostGlobal) {
			out.Changed = append(out.Changed, b)
		}
	}
	return out
}

// byArrival orders by (createdAt asc, sequence asc).
func byArrival(a, b *Bid) int {
	if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Sequence(), b.Sequence()); c != 0 {
		return c
	}
	return bytes.Compare(a.id[:], b.id[:])
}

// byValue orders by (amount desc, createdAt asc, sequence asc).
func byValue(a, b *Bid) int {
	if c := b.Amount().Cmp(a.Amount()); c != 0 {
		return c
	}
	return byArrival(a, b)
}

// SortByArrival sorts bids in place by (createdAt, sequence).
func SortByArrival(bids []*Bid) {
	slices.SortStableFunc(bids, byArrival)
}

// SortBySequence sorts bids in place by (sequence, createdAt).
func SortBySequence(bids []*Bid) {
	slices.SortStableFunc(bids, func(a, b *Bid) int {
		if c := cmp.Compare(a.Sequence(), b.Sequence()); c != 0 {
			return c
		}
		return a.CreatedAt().Compare(b.CreatedAt())
	})
}
