package posts

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	// Feed devuelve todos los posts, más nuevos primero.
	Feed(ctx context.Context) ([]FeedItem, error)
	Delete(ctx context.Context, id, ownerUserID string) error

	// ToggleLike agrega o quita el like de userID y devuelve el set resultante.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likes []string, err error)
}
