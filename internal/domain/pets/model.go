package pets

import (
	"time"

	"petplus/internal/domain/vaccines"
)

// Type distingue publicaciones de adopción de mascotas propias.
// @Enum adoption, personal
type Type string

const (
	TypeAdoption Type = "adoption"
	TypePersonal Type = "personal"
)

func (t Type) Valid() bool {
	return t == TypeAdoption || t == TypePersonal
}

// Status se deriva de Type; solo "adopted" se alcanza por una operación explícita.
// @Enum available, adopted, personal
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
	StatusPersonal  Status = "personal"
)

// DeriveStatus: adoption => available (o adopted si ya lo estaba), personal => personal.
func DeriveStatus(t Type, current Status) Status {
	if t == TypeAdoption {
		if current == StatusAdopted {
			return StatusAdopted
		}
		return StatusAvailable
	}
	return StatusPersonal
}

// Pet es el perfil de una mascota, propia o publicada para adopción.
type Pet struct {
	ID          string
	OwnerUserID string

	Name        string
	Species     string
	Breed       string
	Age         string
	Size        string
	Gender      string
	Description string

	Type   Type
	Status Status

	PhotoURL *string

	CreatedAt time.Time
}

// Contact son los datos del dueño que se muestran en la búsqueda de adopción.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Listing es un pet con lo que se embebe al listarlo.
type Listing struct {
	Pet
	Owner    *Contact // solo en búsqueda de adopción
	Vaccines []vaccines.Vaccine
}

// SearchFilter: los campos vacíos no filtran. Search busca en nombre o raza.
type SearchFilter struct {
	Species string
	Size    string
	Age     string
	Search  string
}
