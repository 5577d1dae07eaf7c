package postgres

import (
	"context"
	"fmt"

	"petplus/internal/domain/vaccines"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type VaccinesRepo struct {
	db *sqlx.DB
}

func NewVaccinesRepo(db *sqlx.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	query, args, err := psql.Insert("vaccines").
		Columns(vaccineColumns...).
		Values(v.ID, v.PetID, v.Name, v.Date, v.NextDate, v.Vet, v.Notes, v.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return vaccines.ErrNotFound
		}
		return fmt.Errorf("insert vaccine: %w", err)
	}
	return nil
}

func (r *VaccinesRepo) Update(ctx context.Context, v vaccines.Vaccine) (vaccines.Vaccine, error) {
	query, args, err := psql.Update("vaccines").
		Set("name", v.Name).
		Set("date", v.Date).
		Set("next_date", v.NextDate).
		Set("vet", v.Vet).
		Set("notes", v.Notes).
		Where(sq.Eq{"id": v.ID, "pet_id": v.PetID}).
		Suffix(returning(vaccineColumns)).
		ToSql()
	if err != nil {
		return vaccines.Vaccine{}, err
	}

	var row vaccineRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return vaccines.Vaccine{}, vaccines.ErrNotFound
		}
		return vaccines.Vaccine{}, fmt.Errorf("update vaccine: %w", err)
	}
	return row.toDomain(), nil
}

func (r *VaccinesRepo) Delete(ctx context.Context, petID, id string) error {
	query, args, err := psql.Delete("vaccines").Where(sq.Eq{"id": id, "pet_id": petID}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return vaccines.ErrNotFound
		}
		return fmt.Errorf("delete vaccine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return vaccines.ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) ListByPets(ctx context.Context, petIDs []string) (map[string][]vaccines.Vaccine, error) {
	out := make(map[string][]vaccines.Vaccine)
	if len(petIDs) == 0 {
		return out, nil
	}

	query, args, err := buildVaccinesByPets(petIDs)
	if err != nil {
		return nil, err
	}

	var rows []vaccineRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}
	for _, row := range rows {
		out[row.PetID] = append(out[row.PetID], row.toDomain())
	}
	return out, nil
}
