package postgres

import sq "github.com/Masterminds/squirrel"

// psql numera los placeholders ($1, $2, ...) a medida que se agregan predicados y asignaciones.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns = []string{"id", "name", "email", "phone", "password_hash", "photo_url", "created_at"}

	petColumns = []string{
		"p.id", "p.owner_id", "p.name", "p.species", "p.breed", "p.age", "p.size",
		"p.gender", "p.type", "p.status", "p.description", "p.photo_url", "p.created_at",
	}

	vaccineColumns = []string{"id", "pet_id", "name", "date", "next_date", "vet", "notes", "created_at"}

	serviceColumns = []string{"id", "provider_id", "name", "professional", "description", "phone", "created_at"}
)

// returning arma "RETURNING a, b, c" sin el alias de tabla (un UPDATE no lo lleva).
func returning(cols []string) string {
	out := "RETURNING "
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		if len(c) > 2 && c[1] == '.' {
			c = c[2:]
		}
		out += c
	}
	return out
}
