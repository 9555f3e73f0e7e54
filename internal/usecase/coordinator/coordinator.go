package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"
	"car-auction/internal/pkg/clock"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRegionUnreachable = errs.New("region is not reachable")
	ErrNoActivePartition = errs.New("no active partition for region")
)

// PartitionSource reports simulated connectivity and heal notifications.
type PartitionSource interface {
	IsPartitioned() bool
	OnPartitionStarted(h partition.StartedHandler)
	OnPartitionHealed(h partition.HealedHandler)
}

// statusTracker is the status GetPartitionStatus last observed.
type statusTracker struct {
	last         partition.Status
	incident     *partition.Event
	lastHealedID uuid.UUID
}

type Coordinator struct {
	source PartitionSource
	events shared.PartitionEventRepository
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	tracker statusTracker

	hmu      sync.RWMutex
	detected []partition.DetectedHandler
	healed   []partition.HealedHandler
}

// New registers the coordinator as the start and heal listener of source.
func New(source PartitionSource, events shared.PartitionEventRepository, clk clock.Clock, logger *slog.Logger) *Coordinator {
	c := &Coordinator{
		source:  source,
		events:  events,
		clock:   clk,
		logger:  logger,
		tracker: statusTracker{last: partition.StatusHealthy},
	}
	source.OnPartitionStarted(c.handleSourceStarted)
	source.OnPartitionHealed(c.handleSourceHealed)
	return c
}

func (c *Coordinator) OnPartitionDetected(h partition.DetectedHandler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.detected = append(c.detected, h)
}

func (c *Coordinator) OnPartitionHealed(h partition.HealedHandler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.healed = append(c.healed, h)
}

// IsRegionReachable is false while any partition is active, whatever r is.
// TODO: check the (caller, auction) region pair once more than two regions exist.
func (c *Coordinator) IsRegionReachable(ctx context.Context, r region.Region) bool {
	return !c.source.IsPartitioned()
}

// ExecuteInRegion runs op only if r is reachable right now.
func (c *Coordinator) ExecuteInRegion(ctx context.Context, r region.Region, op func(ctx context.Context) error) error {
	if !c.IsRegionReachable(ctx, r) {
		return errs.Wrapf(ErrRegionUnreachable, "region %s", r)
	}
	return op(ctx)
}

// GetPartitionStatus derives the current status from the simulator and the
// open incident, and announces a heal the first time it sees
// Partitioned -> Healthy for an incident nobody announced yet.
func (c *Coordinator) GetPartitionStatus(ctx context.Context) (partition.Status, error) {
	active, err := c.events.GetCurrentActive(ctx)
	if err != nil {
		return "", err
	}

	current := partition.StatusHealthy
	switch {
	case c.source.IsPartitioned():
		current = partition.StatusPartitioned
	case active != nil:
		current = active.Status()
	}

	c.mu.Lock()
	prev := c.tracker.last
	if current == prev {
		c.mu.Unlock()
		return current, nil
	}

	var heal *partition.Event
	switch {
	case current == partition.StatusPartitioned && active != nil:
		c.tracker.incident = active
	case prev == partition.StatusPartitioned && current == partition.StatusHealthy:
		if inc := c.tracker.incident; inc != nil && inc.ID() != c.tracker.lastHealedID {
			heal = inc
			c.tracker.lastHealedID = inc.ID()
		}
	}
	c.tracker.last = current
	c.mu.Unlock()

	c.logger.Info("Partition status changed", "from", prev, "to", current)

	if current == partition.StatusPartitioned && active != nil {
		if err := c.AddPartition(ctx, active.OriginBidRegion(), active.AuctionRegion()); err != nil {
			return current, err
		}
	}
	if heal != nil {
		if err := c.announceHeal(ctx, heal); err != nil {
			return current, err
		}
	}
	return current, nil
}

// AddPartition records an incident for auctionRegion unless one is already
// open, and raises PartitionDetected for a new one.
func (c *Coordinator) AddPartition(ctx context.Context, origin, auctionRegion region.Region) error {
	existing, err := c.events.GetCurrentActiveForAuctionRegion(ctx, auctionRegion)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	e, err := partition.NewEvent(origin, auctionRegion, c.clock.Now())
	if err != nil {
		return err
	}
	if _, err := c.events.Create(ctx, e); err != nil {
		// lost a race against another announcement for the same region
		if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
			return nil
		}
		return err
	}

	c.mu.Lock()
	c.tracker.incident = e
	c.mu.Unlock()

	c.logger.Info("Partition detected",
		"origin_region", origin,
		"auction_region", auctionRegion,
		"event_id", e.ID())

	n := partition.Detected{
		EventID:       e.ID(),
		OriginRegion:  origin,
		AuctionRegion: auctionRegion,
		CreatedAt:     e.CreatedAt(),
	}
	c.hmu.RLock()
	handlers := append([]partition.DetectedHandler(nil), c.detected...)
	c.hmu.RUnlock()

	var errList []error
	for _, h := range handlers {
		if err := h(ctx, n); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// GetCurrentPartitionByAuctionRegion returns nil when the region has no open incident.
func (c *Coordinator) GetCurrentPartitionByAuctionRegion(ctx context.Context, auctionRegion region.Region) (*partition.Event, error) {
	return c.events.GetCurrentActiveForAuctionRegion(ctx, auctionRegion)
}

// UpdatePartitionByAuctionRegion moves the open incident of auctionRegion to target.
func (c *Coordinator) UpdatePartitionByAuctionRegion(ctx context.Context, auctionRegion region.Region, target partition.Status) (*partition.Event, error) {
	if !target.IsValid() {
		return nil, errs.Wrapf(partition.ErrUnknownStatus, "target %q", target)
	}
	e, err := c.events.GetCurrentActiveForAuctionRegion(ctx, auctionRegion)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errs.Wrapf(ErrNoActivePartition, "region %s", auctionRegion)
	}
	if err := e.TransitionTo(target, c.clock.Now()); err != nil {
		return nil, err
	}
	if err := c.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// handleSourceStarted only remembers the incident. Auctions are paused when
// a bid first runs into the partition.
func (c *Coordinator) handleSourceStarted(ctx context.Context, e *partition.Event) {
	c.mu.Lock()
	c.tracker.incident = e
	c.mu.Unlock()
	c.logger.Debug("Simulated partition registered",
		"auction_region", e.AuctionRegion(),
		"event_id", e.ID())
}

func (c *Coordinator) handleSourceHealed(ctx context.Context, n partition.Healed) error {
	c.mu.Lock()
	if n.EventID == c.tracker.lastHealedID {
		c.mu.Unlock()
		return nil
	}
	c.tracker.lastHealedID = n.EventID
	c.mu.Unlock()

	return c.raiseHealed(ctx, n)
}

// announceHeal resolves inc if it is still open and raises PartitionHealed.
func (c *Coordinator) announceHeal(ctx context.Context, inc *partition.Event) error {
	now := c.clock.Now()
	current, err := c.events.GetCurrentActiveForAuctionRegion(ctx, inc.AuctionRegion())
	if err != nil {
		return err
	}
	if current != nil && current.ID() == inc.ID() {
		if current.Status() == partition.StatusPartitioned {
			if err := current.BeginReconciliation(now); err != nil {
				return err
			}
		}
		if err := current.Resolve(now); err != nil {
			return err
		}
		if err := c.events.Update(ctx, current); err != nil {
			return err
		}
	}

	return c.raiseHealed(ctx, partition.Healed{
		EventID:       inc.ID(),
		OriginRegion:  inc.OriginBidRegion(),
		AuctionRegion: inc.AuctionRegion(),
		CreatedAt:     inc.CreatedAt(),
		ResolvedAt:    now,
		IsSolved:      true,
	})
}

func (c *Coordinator) raiseHealed(ctx context.Context, n partition.Healed) error {
	c.logger.Info("Partition healed",
		"origin_region", n.OriginRegion,
		"auction_region", n.AuctionRegion,
		"event_id", n.EventID)

	c.hmu.RLock()
	handlers := append([]partition.HealedHandler(nil), c.healed...)
	c.hmu.RUnlock()

	var errList []error
	for _, h := range handlers {
		if err := h(ctx, n); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
