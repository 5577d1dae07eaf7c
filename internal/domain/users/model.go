package users

import "time"

// User es la identidad registrada. El hash nunca sale del paquete por las respuestas HTTP.
type User struct {
	ID           string
	Name         string
	Email        string // lower-case, sin espacios
	Phone        string
	PasswordHash string
	PhotoURL     *string

	CreatedAt time.Time
}

// Photo devuelve el locator o "" si no hay foto.
func (u User) Photo() string {
	if u.PhotoURL == nil {
		return ""
	}
	return *u.PhotoURL
}
