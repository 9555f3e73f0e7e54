package repository

import (
	"context"
	"log/slog"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"
	"car-auction/internal/infra/db"
	"car-auction/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AuctionRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAuctionRepository(dbtx db.DBTX, logger *slog.Logger) *AuctionRepository {
	return &AuctionRepository{db: dbtx, logger: logger}
}

func (r *AuctionRepository) Get(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	row, err := r.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := converter.AuctionFromRow(row, nil)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert auction", err)
	}
	return a, nil
}

// GetWithBids loads the accepted and rejected bids along with the auction.
// Partition-queued bids still pending are left out.
func (r *AuctionRepository) GetWithBids(ctx context.Context, id uuid.UUID) (*auction.Auction, error) {
	row, err := r.getRow(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+converter.BidColumns+`
		FROM bids
		WHERE auction_id = $1 AND (is_accepted OR rejection_reason IS NOT NULL)
		ORDER BY created_at, sequence`, id)
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to load auction bids", err)
	}
	bidRows, err := collectRows(rows, func(br *converter.BidRow) []any { return br.ScanTargets() })
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to scan auction bids", err)
	}

	refs := make([]auction.BidRef, 0, len(bidRows))
	for _, br := range bidRows {
		ref, err := converter.BidRefFromRow(br)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert bid", err)
		}
		refs = append(refs, ref)
	}

	a, err := converter.AuctionFromRow(row, refs)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert auction", err)
	}
	return a, nil
}

func (r *AuctionRepository) Create(ctx context.Context, a *auction.Auction) (uuid.UUID, error) {
	row := converter.AuctionToRow(a)
	_, err := r.db.Exec(ctx, `
		INSERT INTO auctions (`+converter.AuctionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		row.ID, row.VehicleID, row.Region, row.State,
		row.StartingPrice, row.ReservePrice, row.CurrentPrice, row.WinningBidderID,
		row.StartTime, row.EndTime, row.Version, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return uuid.Nil, wrapPgErr(r.logger, "failed to create auction", err)
	}
	return row.ID, nil
}

// Update writes the mutable columns only if the stored version still
// equals a.OriginalVersion().
func (r *AuctionRepository) Update(ctx context.Context, a *auction.Auction) (bool, error) {
	row := converter.AuctionToRow(a)
	tag, err := r.db.Exec(ctx, `
		UPDATE auctions
		SET state = $2, current_price = $3, winning_bidder_id = $4, version = $5, updated_at = $6
		WHERE id = $1 AND version = $7`,
		row.ID, row.State, row.CurrentPrice, row.WinningBidderID, row.Version, row.UpdatedAt,
		a.OriginalVersion(),
	)
	if err != nil {
		return false, wrapPgErr(r.logger, "failed to update auction", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM auctions WHERE id = $1)`, row.ID).Scan(&exists); err != nil {
		return false, wrapPgErr(r.logger, "failed to check auction", err)
	}
	if !exists {
		return false, infra.WrapRepoErr(r.logger, infra.KindNotFound, "auction not found", nil)
	}
	return false, nil
}

func (r *AuctionRepository) GetActiveByRegion(ctx context.Context, rg region.Region) ([]*auction.Auction, error) {
	return r.listByRegionAndState(ctx, rg, auction.StateActive)
}

func (r *AuctionRepository) GetNeedingReconciliationByRegion(ctx context.Context, rg region.Region) ([]*auction.Auction, error) {
	return r.listByRegionAndState(ctx, rg, auction.StatePaused)
}

func (r *AuctionRepository) getRow(ctx context.Context, id uuid.UUID) (converter.AuctionRow, error) {
	var row converter.AuctionRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.AuctionColumns+` FROM auctions WHERE id = $1`, id).
		Scan(row.ScanTargets()...)
	if err != nil {
		return converter.AuctionRow{}, wrapPgErr(r.logger, "auction not found", err)
	}
	return row, nil
}

func (r *AuctionRepository) listByRegionAndState(ctx context.Context, rg region.Region, st auction.State) ([]*auction.Auction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.AuctionColumns+`
		FROM auctions
		WHERE region = $1 AND state = $2
		ORDER BY created_at`, rg.String(), st.String())
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to list auctions", err)
	}
	auctionRows, err := collectRows(rows, func(ar *converter.AuctionRow) []any { return ar.ScanTargets() })
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to scan auctions", err)
	}

	out := make([]*auction.Auction, 0, len(auctionRows))
	for _, ar := range auctionRows {
		a, err := converter.AuctionFromRow(ar, nil)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert auction", err)
		}
		out = append(out, a)
	}
	return out, nil
}

// collectRows scans every row into a fresh T using the targets fn returns.
func collectRows[T any](rows pgx.Rows, targets func(*T) []any) ([]T, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		var v T
		err := row.Scan(targets(&v)...)
		return v, err
	})
}
