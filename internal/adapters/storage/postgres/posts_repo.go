package postgres

import (
	"context"
	"fmt"

	"petplus/internal/domain/posts"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type PostsRepo struct {
	db *sqlx.DB
}

func NewPostsRepo(db *sqlx.DB) *PostsRepo {
	return &PostsRepo{db: db}
}

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	query, args, err := psql.Insert("posts").
		Columns("id", "owner_id", "content", "photo_url", "location", "created_at").
		Values(p.ID, p.OwnerUserID, p.Content, p.PhotoURL, p.Location, p.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	query, args, err := psql.Select("id", "owner_id", "content", "photo_url", "location", "created_at").
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return posts.Post{}, err
	}

	var row postRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return posts.Post{}, posts.ErrNotFound
		}
		return posts.Post{}, fmt.Errorf("get post: %w", err)
	}
	return row.toDomain(), nil
}

// Feed hace dos consultas: los posts con su autor y luego todos los likes de esos posts.
func (r *PostsRepo) Feed(ctx context.Context) ([]posts.FeedItem, error) {
	query, args, err := psql.Select(
		"b.id", "b.owner_id", "b.content", "b.photo_url", "b.location", "b.created_at",
		"u.name AS owner_name", "u.photo_url AS owner_photo_url",
	).
		From("posts b").
		Join("users u ON u.id = b.owner_id").
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}

	items := make([]posts.FeedItem, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		items = append(items, posts.FeedItem{
			Post:          row.toDomain(),
			OwnerName:     row.OwnerName,
			OwnerPhotoURL: row.OwnerPhotoURL,
			Likes:         []string{},
		})
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return items, nil
	}

	likes, err := r.likesOf(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if ls, ok := likes[items[i].ID]; ok {
			items[i].Likes = ls
		}
	}
	return items, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	query, args, err := psql.Delete("posts").Where(sq.Eq{"id": id, "owner_id": ownerUserID}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return posts.ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// ToggleLike: si el DELETE no borró nada, el like no existía y se inserta. Todo en una transacción.
func (r *PostsRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, []string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	del, args, err := psql.Delete("post_likes").Where(sq.Eq{"post_id": postID, "user_id": userID}).ToSql()
	if err != nil {
		return false, nil, err
	}
	res, err := tx.ExecContext(ctx, del, args...)
	if err != nil {
		if isNoRows(err) {
			return false, nil, posts.ErrNotFound
		}
		return false, nil, fmt.Errorf("unlike: %w", err)
	}

	liked := false
	if n, _ := res.RowsAffected(); n == 0 {
		ins, args, err := psql.Insert("post_likes").
			Columns("post_id", "user_id").
			Values(postID, userID).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return false, nil, err
		}
		if _, err := tx.ExecContext(ctx, ins, args...); err != nil {
			if hasCode(err, codeForeignKeyViolation) {
				return false, nil, posts.ErrNotFound
			}
			return false, nil, fmt.Errorf("like: %w", err)
		}
		liked = true
	}

	likes, err := r.likesOf(ctx, tx, []string{postID})
	if err != nil {
		return false, nil, err
	}
	if err := tx.Commit(); err != nil {
		return false, nil, fmt.Errorf("commit: %w", err)
	}

	out := likes[postID]
	if out == nil {
		out = []string{}
	}
	return liked, out, nil
}

func (r *PostsRepo) likesOf(ctx context.Context, q sqlx.QueryerContext, postIDs []string) (map[string][]string, error) {
	query, args, err := psql.Select("post_id", "user_id").
		From("post_likes").
		Where(sq.Eq{"post_id": postIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		PostID string `db:"post_id"`
		UserID string `db:"user_id"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("likes: %w", err)
	}

	out := make(map[string][]string, len(postIDs))
	for _, row := range rows {
		out[row.PostID] = append(out[row.PostID], row.UserID)
	}
	return out, nil
}
