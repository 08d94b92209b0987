package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pendant/pkg/adapters/redis"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunReportStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_KeysAndTTL(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("bench:"), redis.WithTTL(time.Hour))
	ctx := context.Background()

	report := &domain.Report{ID: "r1", Behaviour: "alert", Result: domain.ResultFinished, StartedAt: time.Now()}
	require.NoError(t, store.Save(ctx, report))

	assert.True(t, mr.Exists("bench:report:r1"))
	assert.Equal(t, time.Hour, mr.TTL("bench:report:r1"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids)

	mr.FastForward(2 * time.Hour)
	_, err = store.Load(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestRedisStore_ListPrunesExpired(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "stale", StartedAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "fresh", StartedAt: time.Now()}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)
}
