package partition

import (
	"context"
	"time"

	"car-auction/internal/domain/region"

	"github.com/google/uuid"
)

// Detected is raised when an incident is first recorded for an auction region.
type Detected struct {
	EventID       uuid.UUID
	OriginRegion  region.Region
	AuctionRegion region.Region
	CreatedAt     time.Time
}

// Healed is raised once per incident when connectivity returns.
type Healed struct {
	EventID       uuid.UUID
	OriginRegion  region.Region
	AuctionRegion region.Region
	CreatedAt     time.Time
	ResolvedAt    time.Time
	IsSolved      bool
}

// StartedHandler is told about a simulated partition once it is persisted.
type StartedHandler func(ctx context.Context, e *Event)

type DetectedHandler func(ctx context.Context, n Detected) error

type HealedHandler func(ctx context.Context, n Healed) error
