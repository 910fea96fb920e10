package cleanup

import (
	"context"
	"testing"
	"time"

	"employee-datahub/service/models"
	"employee-datahub/service/run_store"
	"employee-datahub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpiredRuns(t *testing.T) {
	ctx := context.Background()
	store := run_store.NewRunStore(testutil.NewTestDB(t))
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	for i, age := range []int{1, 10, 31, 90} {
		require.NoError(t, store.Save(ctx, &models.CleaningRun{
			InputFile:  "raw.csv",
			OutputFile: "cleaned.csv",
			Policy:     "global_drop",
			Status:     models.RunStatusSucceeded,
			StartedAt:  now.AddDate(0, 0, -age),
			RowsIn:     i,
		}))
	}

	svc := NewRunCleanupService(store, 30)
	svc.now = func() time.Time { return now }

	deleted, err := svc.CleanupExpiredRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	require.NoError(t, svc.Job()(ctx))
}

func TestCleanupExpiredRuns_Disabled(t *testing.T) {
	svc := NewRunCleanupService(nil, 0)

	deleted, err := svc.CleanupExpiredRuns(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, deleted)
}
