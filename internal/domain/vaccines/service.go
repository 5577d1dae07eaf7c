package vaccines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petplus/internal/domain/ownership"

	"github.com/google/uuid"
)

var (
	ErrNameDateRequired = errors.New("name and date are required")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidNextDate  = errors.New("nextDate must be YYYY-MM-DD")
	ErrNextBeforeDate   = errors.New("nextDate cannot be before date")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("vaccine not found")
	ErrPetNotFound      = errors.New("pet not found")
)

// PetOwners resuelve el dueño del pet padre. Lo implementa pets.Service.
// Un pet inexistente se informa con ErrPetNotFound.
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo Repository
	pets PetOwners
	now  func() time.Time
}

func NewService(repo Repository, pets PetOwners) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

// Input trae las fechas como texto YYYY-MM-DD, tal cual llegan.
type Input struct {
	Name     string
	Date     string
	NextDate string
	Vet      string
	Notes    string
}

func (s *Service) Create(ctx context.Context, petID, actorID string, in Input) (Vaccine, error) {
	if err := s.authorize(ctx, petID, actorID); err != nil {
		return Vaccine{}, err
	}

	v, err := parseInput(in)
	if err != nil {
		return Vaccine{}, err
	}
	v.ID = uuid.NewString()
	v.PetID = petID
	v.CreatedAt = s.now()

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccine{}, err
	}
	return v, nil
}

// Update reemplaza todos los campos editables de la vacuna.
func (s *Service) Update(ctx context.Context, petID, id, actorID string, in Input) (Vaccine, error) {
	if err := s.authorize(ctx, petID, actorID); err != nil {
		return Vaccine{}, err
	}

	v, err := parseInput(in)
	if err != nil {
		return Vaccine{}, err
	}
	v.ID = strings.TrimSpace(id)
	v.PetID = petID

	out, err := s.repo.Update(ctx, v)
	if errors.Is(err, ErrNotFound) {
		// vacuna inexistente o de otro pet: mismo tratamiento que un pet ajeno
		return Vaccine{}, ErrPermissionDenied
	}
	return out, err
}

func (s *Service) Delete(ctx context.Context, petID, id, actorID string) error {
	if err := s.authorize(ctx, petID, actorID); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, petID, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return ErrPermissionDenied
	}
	return err
}

func (s *Service) ListByPets(ctx context.Context, petIDs []string) (map[string][]Vaccine, error) {
	if len(petIDs) == 0 {
		return map[string][]Vaccine{}, nil
	}
	return s.repo.ListByPets(ctx, petIDs)
}

// authorize relee el pet padre en cada llamada; inexistente o ajeno => ErrPermissionDenied.
// Fallas del lookup (db, ctx) se devuelven sin tocar para que terminen en 500.
func (s *Service) authorize(ctx context.Context, petID, actorID string) error {
	if strings.TrimSpace(petID) == "" || s.pets == nil {
		return ErrPermissionDenied
	}
	owner, err := s.pets.OwnerOf(ctx, petID)
	if errors.Is(err, ErrPetNotFound) {
		return ErrPermissionDenied
	}
	if err != nil {
		return fmt.Errorf("lookup pet owner: %w", err)
	}
	if !ownership.Allowed(ownership.Owner(owner), actorID) {
		return ErrPermissionDenied
	}
	return nil
}

func parseInput(in Input) (Vaccine, error) {
	name := strings.TrimSpace(in.Name)
	date := strings.TrimSpace(in.Date)
	if name == "" || date == "" {
		return Vaccine{}, ErrNameDateRequired
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return Vaccine{}, ErrInvalidDate
	}

	v := Vaccine{
		Name:  name,
		Date:  d,
		Vet:   strings.TrimSpace(in.Vet),
		Notes: strings.TrimSpace(in.Notes),
	}

	if next := strings.TrimSpace(in.NextDate); next != "" {
		nd, err := time.Parse(DateLayout, next)
		if err != nil {
			return Vaccine{}, ErrInvalidNextDate
		}
		if nd.Before(d) {
			return Vaccine{}, ErrNextBeforeDate
		}
		v.NextDate = &nd
	}

	return v, nil
}
