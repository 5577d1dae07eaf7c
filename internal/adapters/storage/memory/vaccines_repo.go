package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petplus/internal/domain/vaccines"
)

type vaccineRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccines.Vaccine
}

func NewVaccineRepo() vaccines.Repository {
	return &vaccineRepo{
		byID: make(map[string]vaccines.Vaccine),
	}
}

func (r *vaccineRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccine id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vaccine already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccineRepo) Update(ctx context.Context, v vaccines.Vaccine) (vaccines.Vaccine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[v.ID]
	if !ok || cur.PetID != v.PetID {
		return vaccines.Vaccine{}, vaccines.ErrNotFound
	}
	v.CreatedAt = cur.CreatedAt
	r.byID[v.ID] = v
	return v, nil
}

func (r *vaccineRepo) Delete(ctx context.Context, petID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok || cur.PetID != petID {
		return vaccines.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *vaccineRepo) ListByPets(ctx context.Context, petIDs []string) (map[string][]vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		want[id] = struct{}{}
	}

	out := make(map[string][]vaccines.Vaccine)
	for _, v := range r.byID {
		if _, ok := want[v.PetID]; ok {
			out[v.PetID] = append(out[v.PetID], v)
		}
	}
	for petID := range out {
		vs := out[petID]
		sort.SliceStable(vs, func(i, j int) bool {
			return vs[i].Date.After(vs[j].Date)
		})
	}
	return out, nil
}

func (r *vaccineRepo) deleteByPet(petID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, v := range r.byID {
		if v.PetID == petID {
			delete(r.byID, id)
		}
	}
}
