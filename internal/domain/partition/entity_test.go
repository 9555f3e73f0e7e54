//go:build unit

package partition_test

import (
	"testing"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T, now time.Time) *partition.Event {
	t.Helper()
	e, err := partition.NewEvent(region.EUWest, region.USEast, now)
	require.NoError(t, err)
	return e
}

func TestNewEvent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("作成直後はPartitioned", func(t *testing.T) {
		e := newEvent(t, now)
		assert.Equal(t, partition.StatusPartitioned, e.Status())
		assert.True(t, e.IsActive())
		assert.Equal(t, region.EUWest, e.OriginBidRegion())
		assert.Equal(t, region.USEast, e.AuctionRegion())
		assert.Nil(t, e.EndTime())
	})

	t.Run("不明なリージョンはNG", func(t *testing.T) {
		_, err := partition.NewEvent(region.Region("Moon"), region.USEast, now)
		require.ErrorIs(t, err, partition.ErrInvalidRegion)
	})
}

func TestEventLifecycle(t *testing.T) {
	now := time.Now().UTC()

	t.Run("Partitioned -> Reconciling -> Resolved", func(t *testing.T) {
		e := newEvent(t, now)
		require.NoError(t, e.BeginReconciliation(now.Add(time.Second)))
		assert.Equal(t, partition.StatusReconciling, e.Status())
		assert.True(t, e.IsActive())

		end := now.Add(2 * time.Second)
		require.NoError(t, e.Resolve(end))
		assert.Equal(t, partition.StatusResolved, e.Status())
		assert.False(t, e.IsActive())
		require.NotNil(t, e.EndTime())
		assert.Equal(t, end, *e.EndTime())
	})

	t.Run("Partitionedを飛ばして解決はできない", func(t *testing.T) {
		e := newEvent(t, now)
		require.ErrorIs(t, e.Resolve(now), partition.ErrInvalidTransition)

		e.ResetToHealthy(now)
		require.ErrorIs(t, e.BeginReconciliation(now), partition.ErrInvalidTransition)
		require.ErrorIs(t, e.Resolve(now), partition.ErrInvalidTransition)
	})

	t.Run("照合失敗時はPartitionedへ戻る", func(t *testing.T) {
		e := newEvent(t, now)
		require.NoError(t, e.BeginReconciliation(now))
		require.NoError(t, e.StartPartition(now))
		assert.Equal(t, partition.StatusPartitioned, e.Status())
	})

	t.Run("Healthyへのリセットは終了時刻を消す", func(t *testing.T) {
		e := newEvent(t, now)
		require.NoError(t, e.BeginReconciliation(now))
		require.NoError(t, e.Resolve(now))
		e.ResetToHealthy(now)
		assert.Equal(t, partition.StatusHealthy, e.Status())
		assert.Nil(t, e.EndTime())
	})
}

func TestEventTransitionTo(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name  string
		steps []partition.Status
		want  partition.Status
		errIs error
	}{
		{name: "reconcile then resolve", steps: []partition.Status{partition.StatusReconciling, partition.StatusResolved}, want: partition.StatusResolved},
		{name: "reset", steps: []partition.Status{partition.StatusHealthy}, want: partition.StatusHealthy},
		{name: "restart from healthy", steps: []partition.Status{partition.StatusHealthy, partition.StatusPartitioned}, want: partition.StatusPartitioned},
		{name: "resolve directly", steps: []partition.Status{partition.StatusResolved}, errIs: partition.ErrInvalidTransition},
		{name: "unknown target", steps: []partition.Status{partition.Status("Split")}, errIs: partition.ErrUnknownStatus},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEvent(t, now)
			var err error
			for _, s := range c.steps {
				if err = e.TransitionTo(s, now); err != nil {
					break
				}
			}
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, e.Status())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := partition.ParseStatus("Reconciling")
	require.NoError(t, err)
	assert.Equal(t, partition.StatusReconciling, s)

	_, err = partition.ParseStatus("reconciling")
	require.ErrorIs(t, err, partition.ErrUnknownStatus)
}
