package rediscache

import (
	"context"
	"testing"
	"time"

	"petplus/internal/domain/services"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

var _ services.Cache = (*Cache)(nil)

// unreachable apunta a un puerto sin nadie escuchando.
func unreachable() *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestCache_UnreachableBehavesAsMiss(t *testing.T) {
	c := unreachable()
	defer c.Close()

	ctx := context.Background()
	c.SetListings(ctx, []services.Listing{{ID: "s-1", Name: "Paseos"}}, time.Minute)

	items, ok := c.GetListings(ctx)
	assert.False(t, ok)
	assert.Nil(t, items)

	c.InvalidateListings(ctx)
	assert.Error(t, c.Ping(ctx))
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.SetListings(ctx, nil, time.Minute)
	c.InvalidateListings(ctx)
	_, ok := c.GetListings(ctx)
	assert.False(t, ok)
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestServiceWithUnreachableCache_FallsBackToRepo(t *testing.T) {
	svc := services.NewService(stubRepo{items: []services.Listing{{ID: "s-1", Name: "Paseos", Phone: "555"}}}, unreachable(), time.Minute)

	views, err := svc.List(context.Background(), "")
	assert.NoError(t, err)
	if assert.Len(t, views, 1) {
		assert.True(t, views[0].ContactHidden)
		assert.Empty(t, views[0].Phone)
	}
}

type stubRepo struct{ items []services.Listing }

func (s stubRepo) Create(context.Context, services.Listing) error { return nil }
func (s stubRepo) GetByID(context.Context, string) (services.Listing, error) {
	return services.Listing{}, services.ErrNotFound
}
func (s stubRepo) List(context.Context) ([]services.Listing, error) { return s.items, nil }
func (s stubRepo) Delete(context.Context, string, string) error     { return nil }
