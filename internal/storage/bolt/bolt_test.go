package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/letsssgooo/classroom/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	st, err := Open(path)
	require.NoError(t, err)

	_, err = st.LoadToken(ctx)
	assert.ErrorIs(t, err, storage.ErrNoToken)

	require.NoError(t, st.SaveToken(ctx, "jwt-token"))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)

	token, err := st.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	require.NoError(t, st.ClearToken(ctx))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	_, err = st.LoadToken(ctx)
	assert.ErrorIs(t, err, storage.ErrNoToken)
}

func TestStorage_ImplementsTokenStore(t *testing.T) {
	var _ storage.TokenStore = (*Storage)(nil)
}
