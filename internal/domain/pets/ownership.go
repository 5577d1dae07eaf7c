package pets

import (
	"context"
	"errors"

	"petplus/internal/domain/vaccines"
)

// OwnerID hace que Pet cumpla ownership.Owned.
func (p Pet) OwnerID() string { return p.OwnerUserID }

// OwnerOf expone el dueño de una mascota.
// Vaccines lo usa a través de una interfaz para evitar el ciclo de imports pets <-> vaccines.
// Un pet inexistente sale como vaccines.ErrPetNotFound; cualquier otro error pasa tal cual.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if errors.Is(err, ErrNotFound) {
		return "", vaccines.ErrPetNotFound
	}
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
