package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petplus/internal/domain/posts"
	"petplus/internal/domain/users"
)

type postRepo struct {
	mu    sync.RWMutex
	byID  map[string]posts.Post
	likes map[string][]string // post id -> user ids, en orden de like

	users users.Repository
}

func NewPostRepo(usersRepo users.Repository) posts.Repository {
	return &postRepo{
		byID:  make(map[string]posts.Post),
		likes: make(map[string][]string),
		users: usersRepo,
	}
}

func (r *postRepo) Create(ctx context.Context, p posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return posts.Post{}, posts.ErrNotFound
	}
	return p, nil
}

func (r *postRepo) Feed(ctx context.Context) ([]posts.FeedItem, error) {
	r.mu.RLock()
	items := make([]posts.FeedItem, 0, len(r.byID))
	for _, p := range r.byID {
		items = append(items, posts.FeedItem{
			Post:  p,
			Likes: append([]string{}, r.likes[p.ID]...),
		})
	}
	r.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	out := items[:0]
	for _, it := range items {
		// igual que el JOIN con users
		if r.users == nil {
			continue
		}
		u, err := r.users.GetByID(ctx, it.OwnerUserID)
		if err != nil {
			continue
		}
		it.OwnerName = u.Name
		it.OwnerPhotoURL = u.PhotoURL
		out = append(out, it)
	}
	return out, nil
}

func (r *postRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return posts.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.likes, id)
	return nil
}

func (r *postRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[postID]; !ok {
		return false, nil, posts.ErrNotFound
	}

	current := r.likes[postID]
	next := make([]string, 0, len(current)+1)
	liked := true
	for _, uid := range current {
		if uid == userID {
			liked = false
			continue
		}
		next = append(next, uid)
	}
	if liked {
		next = append(next, userID)
	}

	r.likes[postID] = next
	return liked, append([]string{}, next...), nil
}
