package services

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	// List devuelve todo, más nuevos primero.
	List(ctx context.Context) ([]Listing, error)
	Delete(ctx context.Context, id, providerID string) error
}

// Cache guarda el listado completo sin enmascarar. Una falla del cache se trata como miss.
type Cache interface {
	GetListings(ctx context.Context) ([]Listing, bool)
	SetListings(ctx context.Context, items []Listing, ttl time.Duration)
	InvalidateListings(ctx context.Context)
}

type noopCache struct{}

func (noopCache) GetListings(context.Context) ([]Listing, bool)         { return nil, false }
func (noopCache) SetListings(context.Context, []Listing, time.Duration) {}
func (noopCache) InvalidateListings(context.Context)                    {}
