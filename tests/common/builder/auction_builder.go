//go:build unit || e2e

package builder

import (
	"time"

	domauction "car-auction/internal/domain/auction"
	"car-auction/internal/domain/region"
	reqdto "car-auction/internal/handler/dto/request"
	"car-auction/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuctionBuilder struct {
	VehicleID     uuid.UUID
	Region        region.Region
	StartingPrice decimal.Decimal
	ReservePrice  *decimal.Decimal
	StartTime     time.Time
	EndTime       time.Time
	Now           time.Time
}

func NewAuctionBuilder() *AuctionBuilder {
	now := time.Now().UTC()
	reserve := decimal.NewFromInt(15000)
	return &AuctionBuilder{
		VehicleID:     uuid.New(),
		Region:        region.USEast,
		StartingPrice: decimal.NewFromInt(10000),
		ReservePrice:  &reserve,
		StartTime:     now,
		EndTime:       now.Add(time.Hour),
		Now:           now,
	}
}

func (b *AuctionBuilder) With(mutate func(*AuctionBuilder)) *AuctionBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *AuctionBuilder) BuildDomain() (*domauction.Auction, error) {
	return domauction.NewAuction(b.VehicleID, b.Region, b.StartingPrice, b.ReservePrice, b.StartTime, b.EndTime, b.Now)
}

// BuildActive returns a started auction and panics on invalid builder state.
func (b *AuctionBuilder) BuildActive() *domauction.Auction {
	a, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	if err := a.Start(b.Now); err != nil {
		panic(err)
	}
	a.Persisted()
	return a
}

// BuildPaused returns an auction that was started and then paused.
func (b *AuctionBuilder) BuildPaused() *domauction.Auction {
	a := b.BuildActive()
	if err := a.Pause(b.Now); err != nil {
		panic(err)
	}
	a.Persisted()
	return a
}

func (b *AuctionBuilder) BuildCreateRequestDTO() reqdto.CreateAuctionRequest {
	r := b.Region.String()
	return reqdto.CreateAuctionRequest{
		VehicleID:     b.VehicleID,
		Region:        &r,
		StartingPrice: b.StartingPrice,
		ReservePrice:  b.ReservePrice,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
	}
}

func (b *AuctionBuilder) BuildView(level domauction.ConsistencyLevel) *queries.AuctionView {
	return queries.NewAuctionView(b.BuildActive(), level)
}

// Fluent builder methods
func (b *AuctionBuilder) WithRegion(r region.Region) *AuctionBuilder {
	b.Region = r
	return b
}

func (b *AuctionBuilder) WithStartingPrice(amount int64) *AuctionBuilder {
	b.StartingPrice = decimal.NewFromInt(amount)
	return b
}

func (b *AuctionBuilder) WithoutReservePrice() *AuctionBuilder {
	b.ReservePrice = nil
	return b
}

func (b *AuctionBuilder) WithSchedule(start, end time.Time) *AuctionBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *AuctionBuilder) WithNow(now time.Time) *AuctionBuilder {
	b.Now = now
	return b
}

func (b *AuctionBuilder) AsExpired() *AuctionBuilder {
	b.StartTime = b.Now.Add(-2 * time.Hour)
	b.EndTime = b.Now.Add(-time.Hour)
	return b
}
