package simulator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/pkg/clock"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/shared"
)

var ErrInvalidDuration = errs.New("partition duration must be positive")

type activePartition struct {
	event *partition.Event
	timer *time.Timer
	gen   uint64
}

// Simulator fakes network partitions between regions. Each auction region
// has at most one active partition, which heals itself when its timer fires.
type Simulator struct {
	events shared.PartitionEventRepository
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	active  map[region.Region]*activePartition
	gen     uint64
	started []partition.StartedHandler
	healed  []partition.HealedHandler

	defaultRegion atomic.Value

	baseCtx context.Context
	cancel  context.CancelFunc
}

func New(events shared.PartitionEventRepository, clk clock.Clock, logger *slog.Logger, defaultRegion region.Region) *Simulator {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Simulator{
		events:  events,
		clock:   clk,
		logger:  logger,
		active:  make(map[region.Region]*activePartition),
		baseCtx: ctx,
		cancel:  cancel,
	}
	s.defaultRegion.Store(defaultRegion)
	return s
}

func (s *Simulator) OnPartitionStarted(h partition.StartedHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = append(s.started, h)
}

func (s *Simulator) OnPartitionHealed(h partition.HealedHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healed = append(s.healed, h)
}

// SimulatePartition cuts auctionRegion off from origin for d. A partition
// already active for auctionRegion is replaced and its timer cancelled.
func (s *Simulator) SimulatePartition(ctx context.Context, origin, auctionRegion region.Region, d time.Duration) (*partition.Event, error) {
	if d <= 0 {
		return nil, errs.Wrapf(ErrInvalidDuration, "got %s", d)
	}
	now := s.clock.Now()
	e, err := partition.NewEvent(origin, auctionRegion, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if old, ok := s.active[auctionRegion]; ok {
		old.timer.Stop()
		delete(s.active, auctionRegion)
	}

	prev, err := s.events.GetCurrentActiveForAuctionRegion(ctx, auctionRegion)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if prev != nil {
		prev.ResetToHealthy(now)
		if err := s.events.Update(ctx, prev); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	if _, err := s.events.Create(ctx, e); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.gen++
	gen := s.gen
	s.active[auctionRegion] = &activePartition{
		event: e,
		gen:   gen,
		timer: time.AfterFunc(d, func() { s.autoHeal(auctionRegion, gen) }),
	}
	handlers := append([]partition.StartedHandler(nil), s.started...)
	s.mu.Unlock()

	s.logger.Info("Partition started",
		"origin_region", origin,
		"auction_region", auctionRegion,
		"duration", d.String(),
		"event_id", e.ID())

	for _, h := range handlers {
		h(ctx, e)
	}
	return e, nil
}

// HealPartitionByRegion heals the active partition of auctionRegion. It is a
// no-op when the region is not partitioned.
func (s *Simulator) HealPartitionByRegion(ctx context.Context, auctionRegion region.Region) error {
	_, err := s.heal(ctx, auctionRegion, 0)
	return err
}

// HealPartition heals every active partition.
func (s *Simulator) HealPartition(ctx context.Context) error {
	var errList []error
	for _, r := range s.ActiveRegions() {
		if _, err := s.heal(ctx, r, 0); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

func (s *Simulator) IsPartitioned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}

func (s *Simulator) IsRegionPartitioned(r region.Region) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[r]
	return ok
}

// ActiveRegions lists partitioned auction regions in region order.
func (s *Simulator) ActiveRegions() []region.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]region.Region, 0, len(s.active))
	for _, r := range region.All() {
		if _, ok := s.active[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// GetCurrentRegion prefers the caller region carried by ctx.
func (s *Simulator) GetCurrentRegion(ctx context.Context) region.Region {
	if r, ok := region.CallerFrom(ctx); ok {
		return r
	}
	return s.defaultRegion.Load().(region.Region)
}

func (s *Simulator) SetCurrentRegion(r region.Region) error {
	if !r.IsValid() {
		return errs.Wrapf(region.ErrUnknownRegion, "set current region %q", r)
	}
	s.defaultRegion.Store(r)
	return nil
}

// Stop cancels all pending auto-heal timers.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for r, ap := range s.active {
		ap.timer.Stop()
		delete(s.active, r)
	}
	s.cancel()
}

func (s *Simulator) autoHeal(auctionRegion region.Region, gen uint64) {
	healed, err := s.heal(s.baseCtx, auctionRegion, gen)
	if err != nil {
		s.logger.Error("Auto-heal failed",
			"auction_region", auctionRegion,
			"error", err.Error())
		return
	}
	if healed {
		s.logger.Info("Partition auto-healed", "auction_region", auctionRegion)
	}
}

// heal removes the active partition of auctionRegion. A non-zero gen only
// matches the incident that installed it, so a stale timer never heals a
// newer partition.
func (s *Simulator) heal(ctx context.Context, auctionRegion region.Region, gen uint64) (bool, error) {
	s.mu.Lock()
	ap, ok := s.active[auctionRegion]
	if !ok || (gen != 0 && ap.gen != gen) {
		s.mu.Unlock()
		return false, nil
	}
	ap.timer.Stop()
	delete(s.active, auctionRegion)
	handlers := append([]partition.HealedHandler(nil), s.healed...)
	s.mu.Unlock()

	now := s.clock.Now()
	n := partition.Healed{
		EventID:       ap.event.ID(),
		OriginRegion:  ap.event.OriginBidRegion(),
		AuctionRegion: auctionRegion,
		CreatedAt:     ap.event.CreatedAt(),
		ResolvedAt:    now,
		IsSolved:      true,
	}

	var errList []error
	for _, h := range handlers {
		if err := h(ctx, n); err != nil {
			errList = append(errList, err)
		}
	}

	if len(errList) == 0 {
		if err := s.resolveIfOpen(ctx, auctionRegion, now); err != nil {
			errList = append(errList, err)
		}
	}

	s.logger.Info("Partition healed",
		"origin_region", n.OriginRegion,
		"auction_region", auctionRegion,
		"event_id", n.EventID)
	return true, errors.Join(errList...)
}

// resolveIfOpen closes an incident that the heal listeners left open. It
// is skipped when a listener failed so the incident stays visible.
func (s *Simulator) resolveIfOpen(ctx context.Context, auctionRegion region.Region, now time.Time) error {
	e, err := s.events.GetCurrentActiveForAuctionRegion(ctx, auctionRegion)
	if err != nil || e == nil {
		return err
	}
	if e.Status() == partition.StatusPartitioned {
		if err := e.BeginReconciliation(now); err != nil {
			return err
		}
	}
	if err := e.Resolve(now); err != nil {
		return err
	}
	return s.events.Update(ctx, e)
}
