package repository

import (
	"context"
	"log/slog"
	"time"

	"car-auction/internal/domain/bid"
	"car-auction/internal/infra"
	"car-auction/internal/infra/db"
	"car-auction/internal/infra/repository/converter"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BidRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBidRepository(dbtx db.DBTX, logger *slog.Logger) *BidRepository {
	return &BidRepository{db: dbtx, logger: logger}
}

func (r *BidRepository) Get(ctx context.Context, id uuid.UUID) (*bid.Bid, error) {
	var row converter.BidRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.BidColumns+` FROM bids WHERE id = $1`, id).
		Scan(row.ScanTargets()...)
	if err != nil {
		return nil, wrapPgErr(r.logger, "bid not found", err)
	}
	b, err := converter.BidFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert bid", err)
	}
	return b, nil
}

func (r *BidRepository) GetByAuction(ctx context.Context, auctionID uuid.UUID) ([]*bid.Bid, error) {
	return r.list(ctx, `
		SELECT `+converter.BidColumns+`
		FROM bids
		WHERE auction_id = $1
		ORDER BY sequence`, auctionID)
}

func (r *BidRepository) InitSequence(ctx context.Context, auctionID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO auction_sequences (auction_id) VALUES ($1)`, auctionID); err != nil {
		return wrapPgErr(r.logger, "failed to init bid sequence", err)
	}
	return nil
}

// NextSequence increments the counter row in place, so concurrent callers
// queue on the row lock and never see the same value.
func (r *BidRepository) NextSequence(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		UPDATE auction_sequences
		SET last_sequence = last_sequence + 1
		WHERE auction_id = $1
		RETURNING last_sequence`, auctionID).Scan(&seq)
	if err != nil {
		return 0, wrapPgErr(r.logger, "bid sequence not initialized", err)
	}
	return seq, nil
}

func (r *BidRepository) LastSequence(ctx context.Context, auctionID uuid.UUID) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		SELECT GREATEST(
			COALESCE((SELECT last_sequence FROM auction_sequences WHERE auction_id = $1), 0),
			COALESCE((SELECT MAX(sequence) FROM bids WHERE auction_id = $1), 0)
		)`, auctionID).Scan(&seq)
	if err != nil {
		return 0, wrapPgErr(r.logger, "failed to read last bid sequence", err)
	}
	return seq, nil
}

func (r *BidRepository) Create(ctx context.Context, b *bid.Bid) (uuid.UUID, error) {
	row := converter.BidToRow(b)
	_, err := r.db.Exec(ctx, `
		INSERT INTO bids (`+converter.BidColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID, row.AuctionID, row.BidderID, row.Amount, row.OriginRegion, row.Sequence,
		row.IsAccepted, row.RejectionReason, row.IsDuringPartition, row.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, wrapPgErr(r.logger, "failed to create bid", err)
	}
	return row.ID, nil
}

const updateBidStatus = `
	UPDATE bids
	SET is_accepted = $2, rejection_reason = $3, is_during_partition = $4
	WHERE id = $1`

// Update writes the status columns; amount, origin and sequence are immutable.
func (r *BidRepository) Update(ctx context.Context, b *bid.Bid) error {
	tag, err := r.db.Exec(ctx, updateBidStatus,
		b.ID(), b.IsAccepted(), pgconv.StringPtrToPgtype(b.RejectionReason()), b.IsDuringPartition())
	if err != nil {
		return wrapPgErr(r.logger, "failed to update bid", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "bid not found", nil)
	}
	return nil
}

// UpdateMany sends all status updates in one batch. Run it inside a
// transaction to make the batch all-or-nothing.
func (r *BidRepository) UpdateMany(ctx context.Context, bids []*bid.Bid) error {
	if len(bids) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, b := range bids {
		batch.Queue(updateBidStatus,
			b.ID(), b.IsAccepted(), pgconv.StringPtrToPgtype(b.RejectionReason()), b.IsDuringPartition())
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for _, b := range bids {
		tag, err := results.Exec()
		if err != nil {
			return wrapPgErr(r.logger, "failed to update bids", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapRepoErr(r.logger, infra.KindNotFound, "bid not found: "+b.ID().String(), nil)
		}
	}
	return nil
}

func (r *BidRepository) GetQueuedDuringPartitionBeforeDeadline(ctx context.Context, auctionID uuid.UUID, deadline time.Time) ([]*bid.Bid, error) {
	return r.list(ctx, `
		SELECT `+converter.BidColumns+`
		FROM bids
		WHERE auction_id = $1 AND is_during_partition AND created_at < $2
		ORDER BY created_at, sequence`, auctionID, deadline)
}

func (r *BidRepository) list(ctx context.Context, query string, args ...any) ([]*bid.Bid, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to list bids", err)
	}
	bidRows, err := collectRows(rows, func(br *converter.BidRow) []any { return br.ScanTargets() })
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to scan bids", err)
	}

	out := make([]*bid.Bid, 0, len(bidRows))
	for _, br := range bidRows {
		b, err := converter.BidFromRow(br)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert bid", err)
		}
		out = append(out, b)
	}
	return out, nil
}
