package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/domain/ownership"
	"petplus/internal/domain/vaccines"
	portmedia "petplus/internal/ports/media"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNameRequired   = errors.New("name and species are required")
	ErrInvalidType    = errors.New("type must be adoption or personal")
	ErrNotFound       = errors.New("pet not found")
	ErrNotAdoptable   = errors.New("pet is not available for adoption")
	ErrEmptyFieldSent = errors.New("name and species cannot be empty")
)

// VaccineSource trae las vacunas de varios pets en una sola consulta.
type VaccineSource interface {
	ListByPets(ctx context.Context, petIDs []string) (map[string][]vaccines.Vaccine, error)
}

type Service struct {
	repo     Repository
	vaccines VaccineSource
	photos   *media.Relay
	now      func() time.Time
}

func NewService(repo Repository, vaccines VaccineSource, photos *media.Relay) *Service {
	return &Service{
		repo:     repo,
		vaccines: vaccines,
		photos:   photos,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Age         string
	Size        string
	Gender      string
	Type        string // default personal
	Description string
	Photo       *media.File
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrNameRequired
	}

	t := TypePersonal
	if v := strings.TrimSpace(in.Type); v != "" {
		t = Type(strings.ToLower(v))
	}
	if !t.Valid() {
		return Pet{}, ErrInvalidType
	}

	if in.Photo != nil {
		if err := s.photos.Validate(in.Photo); err != nil {
			return Pet{}, err
		}
	}

	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         strings.TrimSpace(in.Age),
		Size:        strings.TrimSpace(in.Size),
		Gender:      strings.TrimSpace(in.Gender),
		Description: strings.TrimSpace(in.Description),
		Type:        t,
		Status:      DeriveStatus(t, ""),
		CreatedAt:   s.now(),
	}

	if in.Photo != nil {
		loc, err := s.photos.Store(ctx, portmedia.KindPet, in.Photo)
		if err != nil {
			return Pet{}, err
		}
		p.PhotoURL = &loc
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdateInput: nil = no enviado.
type UpdateInput struct {
	Name        *string
	Species     *string
	Breed       *string
	Age         *string
	Size        *string
	Gender      *string
	Type        *string
	Description *string
	Photo       *media.File
	RemovePhoto bool
}

func (s *Service) Update(ctx context.Context, id, actorID string, in UpdateInput) (Pet, error) {
	current, err := s.owned(ctx, id, actorID)
	if err != nil {
		return Pet{}, err
	}

	upd := Update{
		Name:        trimmed(in.Name),
		Species:     trimmed(in.Species),
		Breed:       trimmed(in.Breed),
		Age:         trimmed(in.Age),
		Size:        trimmed(in.Size),
		Gender:      trimmed(in.Gender),
		Description: trimmed(in.Description),
	}
	if (upd.Name != nil && *upd.Name == "") || (upd.Species != nil && *upd.Species == "") {
		return Pet{}, ErrEmptyFieldSent
	}

	t := current.Type
	if in.Type != nil {
		t = Type(strings.ToLower(strings.TrimSpace(*in.Type)))
		if !t.Valid() {
			return Pet{}, ErrInvalidType
		}
		upd.Type = &t
	}
	upd.Status = DeriveStatus(t, current.Status)

	if in.Photo != nil {
		if err := s.photos.Validate(in.Photo); err != nil {
			return Pet{}, err
		}
		loc, err := s.photos.Store(ctx, portmedia.KindPet, in.Photo)
		if err != nil {
			return Pet{}, err
		}
		upd.SetPhoto = true
		upd.PhotoURL = &loc
	} else if in.RemovePhoto {
		upd.SetPhoto = true
	}

	return s.repo.Update(ctx, id, actorID, upd)
}

func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	if _, err := s.owned(ctx, id, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, actorID)
}

// Adopt marca como adoptada una publicación disponible.
// Lo autoriza el dueño de la publicación, no el adoptante.
func (s *Service) Adopt(ctx context.Context, id, actorID string) (Pet, error) {
	current, err := s.owned(ctx, id, actorID)
	if err != nil {
		return Pet{}, err
	}
	if current.Type != TypeAdoption || current.Status != StatusAvailable {
		return Pet{}, ErrNotAdoptable
	}
	return s.repo.MarkAdopted(ctx, id, actorID)
}

func (s *Service) SearchAdoption(ctx context.Context, f SearchFilter) ([]Listing, error) {
	items, err := s.repo.SearchAdoption(ctx, SearchFilter{
		Species: strings.TrimSpace(f.Species),
		Size:    strings.TrimSpace(f.Size),
		Age:     strings.TrimSpace(f.Age),
		Search:  strings.TrimSpace(f.Search),
	})
	if err != nil {
		return nil, err
	}
	return items, s.attachVaccines(ctx, items)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Listing, error) {
	ps, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	items := make([]Listing, 0, len(ps))
	for _, p := range ps {
		items = append(items, Listing{Pet: p})
	}
	return items, s.attachVaccines(ctx, items)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// owned resuelve el pet y aplica el chequeo de dueño; ajeno o inexistente => ErrNotFound.
func (s *Service) owned(ctx context.Context, id, actorID string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if !ownership.Allowed(p, actorID) {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) attachVaccines(ctx context.Context, items []Listing) error {
	for i := range items {
		items[i].Vaccines = []vaccines.Vaccine{}
	}
	if len(items) == 0 || s.vaccines == nil {
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	byPet, err := s.vaccines.ListByPets(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if vs, ok := byPet[items[i].ID]; ok {
			items[i].Vaccines = vs
		}
	}
	return nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
