package redis

import (
	"context"
	"net"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/classroom/internal/storage"
)

// CLASSROOM_TEST_REDIS_ADDR — адрес Redis для тестов, например localhost:6379.
func testAddr(t *testing.T) string {
	t.Helper()

	addr := os.Getenv("CLASSROOM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CLASSROOM_TEST_REDIS_ADDR is not set")
	}

	return addr
}

// closedAddr возвращает адрес, на котором никто не слушает.
func closedAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestStorage_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()

	st, err := NewStorage(ctx, testAddr(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ClearToken(ctx))

	_, err = st.LoadToken(ctx)
	assert.ErrorIs(t, err, storage.ErrNoToken)

	require.NoError(t, st.SaveToken(ctx, "jwt-1"))
	require.NoError(t, st.SaveToken(ctx, "jwt-2"))

	token, err := st.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-2", token)

	// второй клиент видит тот же ключ
	other := NewWithClient(goredis.NewClient(&goredis.Options{Addr: testAddr(t)}))
	t.Cleanup(func() { _ = other.Close() })

	token, err = other.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-2", token)

	require.NoError(t, st.ClearToken(ctx))
	require.NoError(t, st.ClearToken(ctx))

	_, err = other.LoadToken(ctx)
	assert.ErrorIs(t, err, storage.ErrNoToken)
}

func TestNewStorage_Unreachable(t *testing.T) {
	_, err := NewStorage(context.Background(), closedAddr(t))
	assert.Error(t, err)
}

func TestStorage_LoadErrorIsNotMissingToken(t *testing.T) {
	st := NewWithClient(goredis.NewClient(&goredis.Options{Addr: closedAddr(t), MaxRetries: -1}))
	t.Cleanup(func() { _ = st.Close() })

	_, err := st.LoadToken(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNoToken)
}

func TestStorage_ImplementsTokenStore(t *testing.T) {
	var _ storage.TokenStore = (*Storage)(nil)
}
