package attendancestore

import (
	"context"
	"testing"
	"time"

	"bunkmate-backend/lib/projection"
	"bunkmate-backend/lib/testutil"
	"bunkmate-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) (Store, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "lib/attendancestore",
		DbSchema: Schema,
	})
	return NewStore(res.DB), cleanup
}

func TestPushAndHistory(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	day1 := time.Date(2025, 7, 14, 10, 0, 0, 0, timezone.Location)
	day2 := day1.AddDate(0, 0, 1)

	err := store.Push(ctx, "alice", day1, map[string]projection.Record{
		"CS301": {Attended: 20, Total: 30},
		"MA201": {Attended: 28, Total: 30},
	})
	require.NoError(t, err)

	err = store.Push(ctx, "alice", day2, map[string]projection.Record{
		"CS301": {Attended: 21, Total: 31},
	})
	require.NoError(t, err)

	series, err := store.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, series, 2)

	require.Equal(t, "CS301", series[0].Subject)
	require.Len(t, series[0].Snapshots, 2)
	require.Equal(t, 20, series[0].Snapshots[0].Attended)
	require.Equal(t, 21, series[0].Snapshots[1].Attended)

	require.Equal(t, "MA201", series[1].Subject)
	require.Len(t, series[1].Snapshots, 1)
}

func TestSameDayPushReplaces(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	morning := time.Date(2025, 7, 14, 9, 0, 0, 0, timezone.Location)
	evening := time.Date(2025, 7, 14, 19, 0, 0, 0, timezone.Location)

	err := store.Push(ctx, "bob", morning, map[string]projection.Record{
		"CS301": {Attended: 20, Total: 30},
	})
	require.NoError(t, err)
	err = store.Push(ctx, "bob", evening, map[string]projection.Record{
		"CS301": {Attended: 21, Total: 31},
	})
	require.NoError(t, err)

	series, err := store.History(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Len(t, series[0].Snapshots, 1)
	require.Equal(t, 21, series[0].Snapshots[0].Attended)
	require.Equal(t, 31, series[0].Snapshots[0].Total)
}

func TestHistoryUnknownUser(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	series, err := store.History(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, series)
}
