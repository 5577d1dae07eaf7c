package services

import "time"

// Listing es un servicio ofrecido por un proveedor (paseador, veterinario, peluquería...).
type Listing struct {
	ID           string
	ProviderID   string
	Name         string
	Professional string
	Description  string
	Phone        string

	CreatedAt time.Time
}

func (l Listing) OwnerID() string { return l.ProviderID }

// View es lo que ve un visitante: sin sesión el teléfono se oculta.
type View struct {
	Listing
	ContactHidden bool
}
