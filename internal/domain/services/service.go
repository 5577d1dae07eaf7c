package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"petplus/internal/domain/ownership"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRequired     = errors.New("name and phone are required")
	ErrNotFound     = errors.New("service not found")
)

const DefaultCacheTTL = 5 * time.Minute

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewService acepta cache nil (sin cache).
func NewService(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// List arma la vista para viewerID; viewerID vacío = visitante anónimo.
func (s *Service) List(ctx context.Context, viewerID string) ([]View, error) {
	items, ok := s.cache.GetListings(ctx)
	if !ok {
		var err error
		items, err = s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetListings(ctx, items, s.ttl)
	}

	anonymous := strings.TrimSpace(viewerID) == ""
	out := make([]View, 0, len(items))
	for _, l := range items {
		v := View{Listing: l}
		if anonymous {
			v.Phone = ""
			v.ContactHidden = true
		}
		out = append(out, v)
	}
	return out, nil
}

type CreateInput struct {
	Name         string
	Professional string
	Description  string
	Phone        string
}

func (s *Service) Create(ctx context.Context, providerID string, in CreateInput) (Listing, error) {
	if strings.TrimSpace(providerID) == "" {
		return Listing{}, ErrInvalidInput
	}

	l := Listing{
		ID:           uuid.NewString(),
		ProviderID:   providerID,
		Name:         strings.TrimSpace(in.Name),
		Professional: strings.TrimSpace(in.Professional),
		Description:  strings.TrimSpace(in.Description),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now(),
	}
	if l.Name == "" || l.Phone == "" {
		return Listing{}, ErrRequired
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return Listing{}, err
	}
	s.cache.InvalidateListings(ctx)
	return l, nil
}

// Delete: solo el proveedor. Ajeno o inexistente => ErrNotFound.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	l, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if err := ownership.Check(l, actorID); err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, l.ID, actorID); err != nil {
		return err
	}
	s.cache.InvalidateListings(ctx)
	return nil
}
