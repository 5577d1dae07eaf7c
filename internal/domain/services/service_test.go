package services_test

import (
	"context"
	"testing"
	"time"

	mem "petplus/internal/adapters/storage/memory"
	"petplus/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	items       []services.Listing
	hit         bool
	sets        int
	invalidated int
}

func (c *fakeCache) GetListings(context.Context) ([]services.Listing, bool) { return c.items, c.hit }

func (c *fakeCache) SetListings(_ context.Context, items []services.Listing, _ time.Duration) {
	c.items, c.hit = items, true
	c.sets++
}

func (c *fakeCache) InvalidateListings(context.Context) {
	c.items, c.hit = nil, false
	c.invalidated++
}

func TestList_MasksPhoneForAnonymous(t *testing.T) {
	svc := services.NewService(mem.NewServiceRepo(), nil, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u-1", services.CreateInput{Name: "Paseos", Professional: "Ana", Phone: "555-0100"})
	require.NoError(t, err)

	anon, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Empty(t, anon[0].Phone)
	assert.True(t, anon[0].ContactHidden)

	logged, err := svc.List(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", logged[0].Phone)
	assert.False(t, logged[0].ContactHidden)
}

func TestList_UsesCacheAndWritesInvalidate(t *testing.T) {
	cache := &fakeCache{}
	svc := services.NewService(mem.NewServiceRepo(), cache, time.Minute)
	ctx := context.Background()

	l, err := svc.Create(ctx, "u-1", services.CreateInput{Name: "Baños", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	_, err = svc.List(ctx, "u-1")
	require.NoError(t, err)
	_, err = svc.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// el cache guarda sin enmascarar
	_, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "1", cache.items[0].Phone)

	require.NoError(t, svc.Delete(ctx, l.ID, "u-1"))
	assert.Equal(t, 2, cache.invalidated)
}

func TestCreateAndDelete(t *testing.T) {
	svc := services.NewService(mem.NewServiceRepo(), nil, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u-1", services.CreateInput{Name: "Paseos"})
	assert.ErrorIs(t, err, services.ErrRequired)

	l, err := svc.Create(ctx, "u-1", services.CreateInput{Name: "Paseos", Phone: "1"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, l.ID, "u-2"), services.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, l.ID, "u-1"))
	assert.ErrorIs(t, svc.Delete(ctx, l.ID, "u-1"), services.ErrNotFound)
}
