package users

import "context"

type Repository interface {
	// Create devuelve ErrEmailTaken si el email ya existe (también ante carreras).
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (User, error)
}

// ProfileUpdate es un update parcial: name y phone siempre, el resto solo si viene.
type ProfileUpdate struct {
	Name  string
	Phone string

	PasswordHash *string // nil = no tocar

	// SetPhoto=false deja photo_url como está. SetPhoto=true con PhotoURL nil la borra.
	SetPhoto bool
	PhotoURL *string
}
