package postgres

import (
	"context"
	"fmt"

	"petplus/internal/domain/services"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type ServicesRepo struct {
	db *sqlx.DB
}

func NewServicesRepo(db *sqlx.DB) *ServicesRepo {
	return &ServicesRepo{db: db}
}

func (r *ServicesRepo) Create(ctx context.Context, l services.Listing) error {
	query, args, err := psql.Insert("services").
		Columns(serviceColumns...).
		Values(l.ID, l.ProviderID, l.Name, l.Professional, l.Description, l.Phone, l.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *ServicesRepo) GetByID(ctx context.Context, id string) (services.Listing, error) {
	query, args, err := psql.Select(serviceColumns...).From("services").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return services.Listing{}, err
	}

	var row serviceRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return services.Listing{}, services.ErrNotFound
		}
		return services.Listing{}, fmt.Errorf("get service: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ServicesRepo) List(ctx context.Context) ([]services.Listing, error) {
	query, args, err := psql.Select(serviceColumns...).From("services").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	out := make([]services.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ServicesRepo) Delete(ctx context.Context, id, providerID string) error {
	query, args, err := psql.Delete("services").Where(sq.Eq{"id": id, "provider_id": providerID}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.ErrNotFound
	}
	return nil
}
