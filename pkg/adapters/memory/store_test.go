package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunReportStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	report := &domain.Report{ID: "r1", Visited: []string{"wake"}}
	require.NoError(t, store.Save(ctx, report))

	report.Visited[0] = "mutated"
	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"wake"}, loaded.Visited)

	loaded.Visited[0] = "again"
	reloaded, _ := store.Load(ctx, "r1")
	assert.Equal(t, []string{"wake"}, reloaded.Visited)
}
