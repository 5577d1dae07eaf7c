package vaccines

import "time"

// DateLayout es el formato de date/nextDate en la API.
const DateLayout = "2006-01-02"

// Vaccine es una aplicación registrada en la libreta de un pet.
type Vaccine struct {
	ID    string
	PetID string

	Name     string
	Date     time.Time  // fecha de aplicación (solo día)
	NextDate *time.Time // refuerzo, opcional
	Vet      string
	Notes    string

	CreatedAt time.Time
}
