package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petplus/internal/domain/services"
)

type serviceRepo struct {
	mu   sync.RWMutex
	byID map[string]services.Listing
}

func NewServiceRepo() services.Repository {
	return &serviceRepo{
		byID: make(map[string]services.Listing),
	}
}

func (r *serviceRepo) Create(ctx context.Context, l services.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("service id required")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *serviceRepo) GetByID(ctx context.Context, id string) (services.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return services.Listing{}, services.ErrNotFound
	}
	return l, nil
}

func (r *serviceRepo) List(ctx context.Context) ([]services.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]services.Listing, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *serviceRepo) Delete(ctx context.Context, id, providerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok || l.ProviderID != providerID {
		return services.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
