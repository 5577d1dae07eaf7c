package postgres

import (
	"petplus/internal/domain/users"

	sq "github.com/Masterminds/squirrel"
)

// buildProfileUpdate: prefijo fijo name, phone; password_hash y photo_url solo si vienen.
// Lo que no se agrega al SET conserva el valor guardado.
func buildProfileUpdate(id string, upd users.ProfileUpdate) (string, []any, error) {
	b := psql.Update("users").
		Set("name", upd.Name).
		Set("phone", upd.Phone)

	if upd.PasswordHash != nil {
		b = b.Set("password_hash", *upd.PasswordHash)
	}
	if upd.SetPhoto {
		b = b.Set("photo_url", upd.PhotoURL)
	}

	return b.Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns)).
		ToSql()
}
