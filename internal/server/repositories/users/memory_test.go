package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_EmptyAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, s.SaveAll(ctx, sampleUsers()))
	got, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleUsers(), got)
}

func TestMemoryStore_CopiesSlices(t *testing.T) {
	ctx := context.Background()
	in := sampleUsers()
	s := NewMemoryStore(in...)

	in[0].Password = "mutated"
	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", got[0].Password)

	got[1].Password = "mutated"
	again, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<y&z>", again[1].Password)
}
