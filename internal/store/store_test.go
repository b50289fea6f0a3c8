package store

import (
	"context"
	"testing"

	"github.com/couchcryptid/energy-dashboard-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PublishesOnComplete(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.LoadBatch(ctx, []domain.Record{{Continent: "Asia", Country: "Japan", Year: 2001}}))
	require.NoError(t, s.LoadBatch(ctx, []domain.Record{{Continent: "Asia", Country: "India", Year: 2002}}))

	_, ok := s.Dataset()
	assert.False(t, ok, "nothing is visible before Complete")
	assert.ErrorIs(t, s.CheckReadiness(ctx), ErrNotLoaded)

	require.NoError(t, s.Complete(ctx))

	d, ok := s.Dataset()
	require.True(t, ok)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"Japan", "India"}, d.Countries("Asia"))
	assert.NoError(t, s.CheckReadiness(ctx))
}

func TestStore_EmptyDatasetIsStillReady(t *testing.T) {
	s := New()
	require.NoError(t, s.Complete(context.Background()))

	d, ok := s.Dataset()
	require.True(t, ok)
	assert.Zero(t, d.Len())
}
