package posts

import "time"

// Post es una publicación del blog comunitario.
type Post struct {
	ID          string
	OwnerUserID string

	Content  string
	PhotoURL *string
	Location *string

	CreatedAt time.Time
}

func (p Post) OwnerID() string { return p.OwnerUserID }

// FeedItem es un post con autor y likes, como se muestra en el feed.
type FeedItem struct {
	Post
	OwnerName     string
	OwnerPhotoURL *string
	Likes         []string // ids de usuarios; nunca nil
}
