//go:build unit

package region_test

import (
	"context"
	"testing"
	"time"

	"car-auction/internal/domain/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("known regions", func(t *testing.T) {
		for _, r := range region.All() {
			parsed, err := region.Parse(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, parsed)
		}
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := region.Parse("APSouth")
		require.ErrorIs(t, err, region.ErrUnknownRegion)
	})
}

func TestLocalTime(t *testing.T) {
	instant := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	us := region.USEast.LocalTime(instant)
	eu := region.EUWest.LocalTime(instant)

	assert.True(t, us.Equal(instant), "local time must denote the same instant")
	assert.True(t, eu.Equal(instant), "local time must denote the same instant")
	assert.NotNil(t, region.Region("nowhere").Location())
}

func TestCallerContext(t *testing.T) {
	_, ok := region.CallerFrom(context.Background())
	assert.False(t, ok)

	ctx := region.WithCaller(context.Background(), region.USEast)
	r, ok := region.CallerFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, region.USEast, r)

	ctx = region.WithCaller(context.Background(), region.Region("bogus"))
	_, ok = region.CallerFrom(ctx)
	assert.False(t, ok)
}
