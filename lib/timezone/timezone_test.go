package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	at := time.Date(2025, 7, 14, 23, 45, 12, 0, time.UTC)
	start := StartOfDay(at)

	require.Equal(t, Location, start.Location())
	require.Equal(t, 0, start.Hour())
	require.Equal(t, 0, start.Minute())
	// 23:45 UTC is already past midnight on the 15th in IST
	require.Equal(t, 15, start.Day())
}

func TestNowIsIST(t *testing.T) {
	require.Equal(t, Location, Now().Location())
}
