package postgres

import (
	"strings"

	"petplus/internal/domain/pets"

	sq "github.com/Masterminds/squirrel"
)

// likeEscaper deja %, _ y \ como literales; backslash es el escape por defecto de ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildSearchAdoption parte del predicado base y agrega filtros en orden fijo:
// species, size, age y por último el texto en nombre o raza.
func buildSearchAdoption(f pets.SearchFilter) (string, []any, error) {
	cols := append(append([]string{}, petColumns...),
		"u.name AS owner_name", "u.phone AS owner_phone", "u.email AS owner_email")

	b := psql.Select(cols...).
		From("pets p").
		Join("users u ON u.id = p.owner_id").
		Where("p.type = 'adoption' AND p.status = 'available'")

	if f.Species != "" {
		b = b.Where(sq.Eq{"p.species": f.Species})
	}
	if f.Size != "" {
		b = b.Where(sq.Eq{"p.size": f.Size})
	}
	if f.Age != "" {
		b = b.Where(sq.Eq{"p.age": f.Age})
	}
	if f.Search != "" {
		term := "%" + likeEscaper.Replace(f.Search) + "%"
		b = b.Where(sq.Or{sq.ILike{"p.name": term}, sq.ILike{"p.breed": term}})
	}

	return b.OrderBy("p.created_at DESC").ToSql()
}

func buildListByOwner(ownerUserID string) (string, []any, error) {
	return psql.Select(petColumns...).
		From("pets p").
		Where(sq.Eq{"p.owner_id": ownerUserID}).
		OrderBy("p.created_at DESC").
		ToSql()
}

// buildPetUpdate escribe solo los campos enviados; status siempre (deriva de type).
func buildPetUpdate(id, ownerUserID string, upd pets.Update) (string, []any, error) {
	b := psql.Update("pets")

	set := func(col string, v *string) {
		if v != nil {
			b = b.Set(col, *v)
		}
	}
	set("name", upd.Name)
	set("species", upd.Species)
	set("breed", upd.Breed)
	set("age", upd.Age)
	set("size", upd.Size)
	set("gender", upd.Gender)
	set("description", upd.Description)
	if upd.Type != nil {
		b = b.Set("type", string(*upd.Type))
	}
	b = b.Set("status", string(upd.Status))
	if upd.SetPhoto {
		b = b.Set("photo_url", upd.PhotoURL)
	}

	return b.Where(sq.Eq{"id": id, "owner_id": ownerUserID}).
		Suffix(returning(petColumns)).
		ToSql()
}

// buildVaccinesByPets trae las vacunas de varios pets en una sola consulta.
func buildVaccinesByPets(petIDs []string) (string, []any, error) {
	return psql.Select(vaccineColumns...).
		From("vaccines").
		Where(sq.Eq{"pet_id": petIDs}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
}
