package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"petplus/internal/domain/media"
	"petplus/internal/domain/ownership"
	portmedia "petplus/internal/ports/media"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrContentRequired = errors.New("content is required")
	ErrNotFound        = errors.New("post not found")
)

type Service struct {
	repo   Repository
	photos *media.Relay
	now    func() time.Time
}

func NewService(repo Repository, photos *media.Relay) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		now:    time.Now,
	}
}

type CreateInput struct {
	Content  string
	Location string
	Photo    *media.File
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Post, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Post{}, ErrInvalidInput
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return Post{}, ErrContentRequired
	}
	if in.Photo != nil {
		if err := s.photos.Validate(in.Photo); err != nil {
			return Post{}, err
		}
	}

	p := Post{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Content:     content,
		CreatedAt:   s.now(),
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		p.Location = &loc
	}

	if in.Photo != nil {
		url, err := s.photos.Store(ctx, portmedia.KindPost, in.Photo)
		if err != nil {
			return Post{}, err
		}
		p.PhotoURL = &url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *Service) Feed(ctx context.Context) ([]FeedItem, error) {
	items, err := s.repo.Feed(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Likes == nil {
			items[i].Likes = []string{}
		}
	}
	return items, nil
}

// Delete: solo el autor. Ajeno o inexistente => ErrNotFound.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if err := ownership.Check(p, actorID); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, p.ID, actorID)
}

// ToggleLike es idempotente por usuario: los likes son un set.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (bool, []string, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(postID))
	if err != nil {
		return false, nil, err
	}

	liked, likes, err := s.repo.ToggleLike(ctx, p.ID, userID)
	if err != nil {
		return false, nil, err
	}
	if likes == nil {
		likes = []string{}
	}
	return liked, likes, nil
}
