package postgres

import (
	"context"
	"fmt"
	"strings"

	"petplus/internal/domain/pets"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type PetsRepo struct {
	db *sqlx.DB
}

func NewPetsRepo(db *sqlx.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	query, args, err := psql.Insert("pets").
		Columns("id", "owner_id", "name", "species", "breed", "age", "size", "gender", "type", "status", "description", "photo_url", "created_at").
		Values(p.ID, p.OwnerUserID, p.Name, p.Species, p.Breed, p.Age, p.Size, p.Gender, string(p.Type), string(p.Status), p.Description, p.PhotoURL, p.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	query, args, err := psql.Select(petColumns...).From("pets p").Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return pets.Pet{}, err
	}

	var row petRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	query, args, err := buildListByOwner(ownerUserID)
	if err != nil {
		return nil, err
	}

	var rows []petRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PetsRepo) SearchAdoption(ctx context.Context, f pets.SearchFilter) ([]pets.Listing, error) {
	query, args, err := buildSearchAdoption(f)
	if err != nil {
		return nil, err
	}

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search adoption: %w", err)
	}

	out := make([]pets.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, pets.Listing{
			Pet:   row.toDomain(),
			Owner: &pets.Contact{Name: row.OwnerName, Phone: row.OwnerPhone, Email: row.OwnerEmail},
		})
	}
	return out, nil
}

func (r *PetsRepo) Update(ctx context.Context, id, ownerUserID string, upd pets.Update) (pets.Pet, error) {
	query, args, err := buildPetUpdate(id, ownerUserID, upd)
	if err != nil {
		return pets.Pet{}, err
	}

	var row petRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("update pet: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	query, args, err := psql.Delete("pets").Where(sq.Eq{"id": id, "owner_id": ownerUserID}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return pets.ErrNotFound
		}
		return fmt.Errorf("delete pet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// MarkAdopted solo transiciona available -> adopted; cualquier otro estado no matchea.
func (r *PetsRepo) MarkAdopted(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	query, args, err := psql.Update("pets").
		Set("status", string(pets.StatusAdopted)).
		Where(sq.Eq{"id": id, "owner_id": ownerUserID, "type": string(pets.TypeAdoption), "status": string(pets.StatusAvailable)}).
		Suffix(returning(petColumns)).
		ToSql()
	if err != nil {
		return pets.Pet{}, err
	}

	var row petRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("adopt pet: %w", err)
	}
	return row.toDomain(), nil
}
