package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStorage()

	_, err := st.LoadToken(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, st.SaveToken(ctx, "first"))
	require.NoError(t, st.SaveToken(ctx, "second"))

	token, err := st.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, st.ClearToken(ctx))
	require.NoError(t, st.ClearToken(ctx))

	_, err = st.LoadToken(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	assert.NoError(t, st.Close())
}
