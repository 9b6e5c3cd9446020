package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "coride:view:travels:/api/v1/travels")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Set(ctx, "coride:view:travels:/api/v1/travels", []byte(`[]`)))

	value, err := m.Get(ctx, "coride:view:travels:/api/v1/travels")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestMemoryDelPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "coride:view:travels:/api/v1/travels", []byte(`a`)))
	require.NoError(t, m.Set(ctx, "coride:view:travels:/api/v1/travel/1", []byte(`b`)))
	require.NoError(t, m.Set(ctx, "coride:view:users:/api/v1/users", []byte(`c`)))

	require.NoError(t, m.DelPrefix(ctx, "coride:view:travels:"))

	_, err := m.Get(ctx, "coride:view:travels:/api/v1/travels")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = m.Get(ctx, "coride:view:travels:/api/v1/travel/1")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	value, err := m.Get(ctx, "coride:view:users:/api/v1/users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`c`), value)
	assert.Equal(t, 1, m.Len())
}

func TestMemorySetCopiesValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte(`original`)
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'X'

	value, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`original`), value)
}
