// Package rediscache guarda el listado de servicios en Redis.
// Es fail-safe: cualquier error de Redis se comporta como miss y nunca corta el request.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"petplus/internal/domain/services"

	"github.com/redis/go-redis/v9"
)

const listingsKey = "petplus:services:listings"

type Cache struct {
	client *redis.Client
	key    string
}

func New(addr, password string, db int) *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  300 * time.Millisecond,
		WriteTimeout: 300 * time.Millisecond,
	}))
}

func NewFromClient(client *redis.Client) *Cache {
	return &Cache{client: client, key: listingsKey}
}

// Ping sirve para loguear al arrancar si Redis responde; el cache funciona igual si no.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// cachedListing es la forma serializada; el dominio no lleva tags json.
type cachedListing struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"providerId"`
	Name         string    `json:"name"`
	Professional string    `json:"professional"`
	Description  string    `json:"description"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c *Cache) GetListings(ctx context.Context) ([]services.Listing, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		// redis.Nil o Redis caído: miss
		return nil, false
	}

	var cached []cachedListing
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}

	out := make([]services.Listing, 0, len(cached))
	for _, l := range cached {
		out = append(out, services.Listing{
			ID:           l.ID,
			ProviderID:   l.ProviderID,
			Name:         l.Name,
			Professional: l.Professional,
			Description:  l.Description,
			Phone:        l.Phone,
			CreatedAt:    l.CreatedAt,
		})
	}
	return out, true
}

func (c *Cache) SetListings(ctx context.Context, items []services.Listing, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}

	cached := make([]cachedListing, 0, len(items))
	for _, l := range items {
		cached = append(cached, cachedListing{
			ID:           l.ID,
			ProviderID:   l.ProviderID,
			Name:         l.Name,
			Professional: l.Professional,
			Description:  l.Description,
			Phone:        l.Phone,
			CreatedAt:    l.CreatedAt,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key, raw, ttl).Err()
}

func (c *Cache) InvalidateListings(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, c.key).Err()
}
