package vaccines

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccine) error
	// Update y Delete filtran por id y pet_id; 0 filas => ErrNotFound.
	Update(ctx context.Context, v Vaccine) (Vaccine, error)
	Delete(ctx context.Context, petID, id string) error
	// ListByPets agrupa por pet_id, más recientes primero.
	ListByPets(ctx context.Context, petIDs []string) (map[string][]Vaccine, error)
}
