//go:build unit

package uow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"正常系: シリアライズ失敗はリトライする", &pgconn.PgError{Code: pgErrCodeSerializationFailure}, true},
		{"正常系: デッドロックはリトライする", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, true},
		{"正常系: ラップされていても判定できる", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}), true},
		{"異常系: 一意制約違反はリトライしない", &pgconn.PgError{Code: "23505"}, false},
		{"異常系: PgError以外はリトライしない", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	retryable := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	assert.True(t, shouldRetry(retryable, 0, 3))
	assert.False(t, shouldRetry(retryable, 3, 3))
	assert.False(t, shouldRetry(errors.New("boom"), 0, 3))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}
