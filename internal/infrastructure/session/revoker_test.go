package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker_RevocaHastaVencimiento(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	m := NewMemoryRevoker()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Revoke(ctx, "s1", now.Add(time.Hour)))

	revoked, err := m.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = m.IsRevoked(ctx, "s2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = m.IsRevoked(ctx, "s1")
	assert.False(t, revoked, "vencido el token la entrada ya no hace falta")
	assert.Empty(t, m.revoked)
}

func TestMemoryRevoker_IgnoraTokensVencidos(t *testing.T) {
	m := NewMemoryRevoker()

	require.NoError(t, m.Revoke(context.Background(), "viejo", time.Now().Add(-time.Minute)))

	assert.Empty(t, m.revoked)
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	return client
}

func TestRedisRevoker_RevokeYConsulta(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	ctx := context.Background()
	r := NewRedisRevoker(client)
	id := uuid.New().String()
	defer client.Del(ctx, revokedKeyPrefix+id)

	revoked, err := r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(time.Minute)))

	revoked, err = r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, revoked)
	ttl := client.TTL(ctx, revokedKeyPrefix+id).Val()
	assert.Greater(t, ttl, time.Duration(0))
}
