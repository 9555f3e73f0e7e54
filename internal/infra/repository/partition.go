package repository

import (
	"context"
	"log/slog"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	"car-auction/internal/infra"
	"car-auction/internal/infra/db"
	"car-auction/internal/infra/repository/converter"
	"car-auction/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PartitionEventRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPartitionEventRepository(dbtx db.DBTX, logger *slog.Logger) *PartitionEventRepository {
	return &PartitionEventRepository{db: dbtx, logger: logger}
}

const activeStatuses = `('Partitioned', 'Reconciling')`

func (r *PartitionEventRepository) GetCurrentActive(ctx context.Context) (*partition.Event, error) {
	return r.findOne(ctx, `
		SELECT `+converter.PartitionEventColumns+`
		FROM partition_events
		WHERE status IN `+activeStatuses+`
		ORDER BY created_at DESC
		LIMIT 1`)
}

func (r *PartitionEventRepository) GetCurrentActiveForAuctionRegion(ctx context.Context, rg region.Region) (*partition.Event, error) {
	return r.findOne(ctx, `
		SELECT `+converter.PartitionEventColumns+`
		FROM partition_events
		WHERE auction_region = $1 AND status IN `+activeStatuses+`
		ORDER BY created_at DESC
		LIMIT 1`, rg.String())
}

// Create fails with a duplicate key error while the region already has an open incident.
func (r *PartitionEventRepository) Create(ctx context.Context, e *partition.Event) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO partition_events (`+converter.PartitionEventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID(), e.OriginBidRegion().String(), e.AuctionRegion().String(), e.Status().String(),
		pgconv.TimeToPgtype(e.CreatedAt()), pgconv.TimePtrToPgtype(e.UpdatedAt()), pgconv.TimePtrToPgtype(e.EndTime()),
	)
	if err != nil {
		return uuid.Nil, wrapPgErr(r.logger, "failed to create partition event", err)
	}
	return e.ID(), nil
}

func (r *PartitionEventRepository) Update(ctx context.Context, e *partition.Event) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE partition_events
		SET status = $2, updated_at = $3, end_time = $4
		WHERE id = $1`,
		e.ID(), e.Status().String(), pgconv.TimePtrToPgtype(e.UpdatedAt()), pgconv.TimePtrToPgtype(e.EndTime()),
	)
	if err != nil {
		return wrapPgErr(r.logger, "failed to update partition event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "partition event not found", nil)
	}
	return nil
}

func (r *PartitionEventRepository) GetHistory(ctx context.Context, since time.Time) ([]*partition.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+converter.PartitionEventColumns+`
		FROM partition_events
		WHERE created_at >= $1
		ORDER BY created_at`, since)
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to list partition events", err)
	}
	eventRows, err := collectRows(rows, func(er *converter.PartitionEventRow) []any { return er.ScanTargets() })
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to scan partition events", err)
	}

	out := make([]*partition.Event, 0, len(eventRows))
	for _, er := range eventRows {
		e, err := converter.PartitionEventFromRow(er)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert partition event", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// findOne returns nil without error when nothing matches.
func (r *PartitionEventRepository) findOne(ctx context.Context, query string, args ...any) (*partition.Event, error) {
	var row converter.PartitionEventRow
	err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, wrapPgErr(r.logger, "failed to find partition event", err)
	}
	e, err := converter.PartitionEventFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to convert partition event", err)
	}
	return e, nil
}
