//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestVehicle inserts a sedan located in region r.
func CreateTestVehicle(t *testing.T, db DBLike, r string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO vehicles (id, brand, model, year, vehicle_type, region, number_of_doors, created_at)
		VALUES ($1, 'Toyota', 'Camry', 2022, 'Sedan', $2, 4, now())`,
		id, r)
	require.NoError(t, err)
	return id
}

// CreateTestAuction inserts an Active auction that started an hour ago and
// ends in endsIn, together with its sequence counter row.
func CreateTestAuction(t *testing.T, db DBLike, vehicleID uuid.UUID, r string, startingPrice int64, endsIn time.Duration) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO auctions (id, vehicle_id, region, state, starting_price, current_price, start_time, end_time, version, created_at, updated_at)
		VALUES ($1, $2, $3, 'Active', $4, $4, $5, $6, 1, $7, $7)`,
		id, vehicleID, r, startingPrice, now.Add(-time.Hour), now.Add(endsIn), now)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO auction_sequences (auction_id, last_sequence) VALUES ($1, 0)`, id)
	require.NoError(t, err)
	return id
}

// AuctionState reads the stored state column.
func AuctionState(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var state string
	err := db.QueryRow(context.Background(), `SELECT state FROM auctions WHERE id = $1`, id).Scan(&state)
	require.NoError(t, err)
	return state
}

// LastSequence reads the auction's sequence counter row.
func LastSequence(t *testing.T, db DBLike, auctionID uuid.UUID) int64 {
	t.Helper()

	var seq int64
	err := db.QueryRow(context.Background(),
		`SELECT last_sequence FROM auction_sequences WHERE auction_id = $1`, auctionID).Scan(&seq)
	require.NoError(t, err)
	return seq
}

// BidStatuses returns each bid's status in sequence order.
func BidStatuses(t *testing.T, db DBLike, auctionID uuid.UUID) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		`SELECT status FROM bids WHERE auction_id = $1 ORDER BY sequence`, auctionID)
	require.NoError(t, err)
	statuses, err := pgx.CollectRows(rows, pgx.RowTo[string])
	require.NoError(t, err)
	return statuses
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except schema_migrations
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
