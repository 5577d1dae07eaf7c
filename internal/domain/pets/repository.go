package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	SearchAdoption(ctx context.Context, f SearchFilter) ([]Listing, error)

	// Las mutaciones filtran por id y dueño; 0 filas => ErrNotFound.
	Update(ctx context.Context, id, ownerUserID string, upd Update) (Pet, error)
	Delete(ctx context.Context, id, ownerUserID string) error
	MarkAdopted(ctx context.Context, id, ownerUserID string) (Pet, error)
}

// Update es un update parcial: nil = no tocar. Status siempre se escribe (deriva de Type).
type Update struct {
	Name        *string
	Species     *string
	Breed       *string
	Age         *string
	Size        *string
	Gender      *string
	Description *string
	Type        *Type

	Status Status

	// SetPhoto=false deja photo_url como está; SetPhoto=true con PhotoURL nil la borra.
	SetPhoto bool
	PhotoURL *string
}
