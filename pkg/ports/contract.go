package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pendant/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	newReport := func(id string, started time.Time) *domain.Report {
		return &domain.Report{
			ID:        id,
			Device:    "pendant-test",
			Behaviour: "alert",
			Result:    domain.ResultFinished,
			Ticks:     12,
			Visited:   []string{"wake", "push_alert", "sleep"},
			StartedAt: started,
			Duration:  1500 * time.Millisecond,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-a"
		report := newReport(id, time.Now().UTC().Truncate(time.Second))
		report.Failure = &domain.HaltError{Behaviour: "alert", Step: "wake", Kind: domain.FailureExhaustedRetries}
		report.Result = domain.ResultCriticalError

		require.NoError(t, store.Save(ctx, report), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.Behaviour, loaded.Behaviour)
		assert.Equal(t, domain.ResultCriticalError, loaded.Result)
		assert.Equal(t, report.Visited, loaded.Visited)
		assert.Equal(t, report.Duration, loaded.Duration)
		assert.True(t, report.StartedAt.Equal(loaded.StartedAt))
		require.NotNil(t, loaded.Failure)
		assert.Equal(t, domain.FailureExhaustedRetries, loaded.Failure.Kind)

		_ = store.Delete(ctx, id)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-d"
		require.NoError(t, store.Save(ctx, newReport(id, time.Now())))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List most recent first", func(t *testing.T) {
		older := prefix + "-old"
		newer := prefix + "-new"
		base := time.Now()
		require.NoError(t, store.Save(ctx, newReport(older, base.Add(-time.Minute))))
		require.NoError(t, store.Save(ctx, newReport(newer, base)))
		defer func() {
			_ = store.Delete(ctx, older)
			_ = store.Delete(ctx, newer)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)

		posOld, posNew := -1, -1
		for i, id := range ids {
			switch id {
			case older:
				posOld = i
			case newer:
				posNew = i
			}
		}
		require.NotEqual(t, -1, posOld)
		require.NotEqual(t, -1, posNew)
		assert.Less(t, posNew, posOld)
	})
}
