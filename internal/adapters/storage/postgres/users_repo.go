package postgres

import (
	"context"
	"fmt"
	"strings"

	"petplus/internal/domain/users"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type UsersRepo struct {
	db *sqlx.DB
}

func NewUsersRepo(db *sqlx.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Name, users.NormalizeEmail(u.Email), u.Phone, u.PasswordHash, u.PhotoURL, u.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		// carrera entre el pre-chequeo y el insert: el índice único decide
		if hasCode(err, codeUniqueViolation) {
			return users.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, sq.Eq{"id": strings.TrimSpace(id)})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, sq.Eq{"email": users.NormalizeEmail(email)})
}

func (r *UsersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(sq.Eq{"email": users.NormalizeEmail(email)}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

func (r *UsersRepo) UpdateProfile(ctx context.Context, id string, upd users.ProfileUpdate) (users.User, error) {
	query, args, err := buildProfileUpdate(id, upd)
	if err != nil {
		return users.User{}, err
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("update profile: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) getOne(ctx context.Context, where sq.Eq) (users.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return users.User{}, err
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), nil
}
