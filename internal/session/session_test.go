package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store := NewStore()

	_, connected := store.Current()
	assert.False(t, connected)
	assert.Empty(t, store.Address())

	first := store.Connect("andr1first")
	assert.Equal(t, "andr1first", first.Address)
	assert.False(t, first.ConnectedAt.IsZero())
	assert.Equal(t, "andr1first", store.Address())

	// connecting again replaces the previous session
	second := store.Connect("andr1second")
	require.Equal(t, "andr1second", second.Address)
	current, connected := store.Current()
	require.True(t, connected)
	assert.Equal(t, "andr1second", current.Address)

	store.Disconnect()
	_, connected = store.Current()
	assert.False(t, connected)
	assert.Empty(t, store.Address())
}
