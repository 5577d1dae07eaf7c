package auth

// Claims representa la información embebida en el token de sesión.
type Claims struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl"`
}
