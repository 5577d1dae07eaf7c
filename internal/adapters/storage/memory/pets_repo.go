package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petplus/internal/domain/pets"
	"petplus/internal/domain/users"
)

// cascader lo implementan los repos hijos que se borran junto con el pet.
type cascader interface {
	deleteByPet(petID string)
}

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet

	users    users.Repository
	children []cascader
}

// NewPetRepo usa usersRepo para el contacto del dueño en la búsqueda de adopción.
// Los repos hijos (vacunas) que se pasen se borran en cascada con el pet.
func NewPetRepo(usersRepo users.Repository, children ...any) pets.Repository {
	r := &petRepo{
		byID:  make(map[string]pets.Pet),
		users: usersRepo,
	}
	for _, c := range children {
		if cc, ok := c.(cascader); ok {
			r.children = append(r.children, cc)
		}
	}
	return r
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *petRepo) SearchAdoption(ctx context.Context, f pets.SearchFilter) ([]pets.Listing, error) {
	r.mu.RLock()
	matched := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if matchesSearch(p, f) {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(matched)

	out := make([]pets.Listing, 0, len(matched))
	for _, p := range matched {
		// igual que el JOIN: sin dueño no hay fila
		if r.users == nil {
			continue
		}
		u, err := r.users.GetByID(ctx, p.OwnerUserID)
		if err != nil {
			continue
		}
		out = append(out, pets.Listing{
			Pet:   p,
			Owner: &pets.Contact{Name: u.Name, Phone: u.Phone, Email: u.Email},
		})
	}
	return out, nil
}

func (r *petRepo) Update(ctx context.Context, id, ownerUserID string, upd pets.Update) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.Pet{}, pets.ErrNotFound
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Name, upd.Name)
	set(&p.Species, upd.Species)
	set(&p.Breed, upd.Breed)
	set(&p.Age, upd.Age)
	set(&p.Size, upd.Size)
	set(&p.Gender, upd.Gender)
	set(&p.Description, upd.Description)
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	p.Status = upd.Status
	if upd.SetPhoto {
		p.PhotoURL = upd.PhotoURL
	}

	r.byID[id] = p
	return p, nil
}

func (r *petRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		r.mu.Unlock()
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	for _, c := range r.children {
		c.deleteByPet(id)
	}
	return nil
}

func (r *petRepo) MarkAdopted(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID || p.Type != pets.TypeAdoption || p.Status != pets.StatusAvailable {
		return pets.Pet{}, pets.ErrNotFound
	}
	p.Status = pets.StatusAdopted
	r.byID[id] = p
	return p, nil
}

func matchesSearch(p pets.Pet, f pets.SearchFilter) bool {
	if p.Type != pets.TypeAdoption || p.Status != pets.StatusAvailable {
		return false
	}
	if f.Species != "" && p.Species != f.Species {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Age != "" && p.Age != f.Age {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.Breed), term) {
			return false
		}
	}
	return true
}

func sortNewestFirst(ps []pets.Pet) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt.After(ps[j].CreatedAt)
	})
}
