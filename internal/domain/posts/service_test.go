package posts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mediamem "petplus/internal/adapters/media/memory"
	mem "petplus/internal/adapters/storage/memory"
	"petplus/internal/domain/media"
	"petplus/internal/domain/posts"
	"petplus/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func newService(t *testing.T) (*posts.Service, *mediamem.Uploader) {
	t.Helper()
	userRepo := mem.NewUserRepo()
	photo := "https://media.local/u1.png"
	require.NoError(t, userRepo.Create(context.Background(), users.User{ID: "u-1", Name: "Ana", Email: "ana@example.com", PhotoURL: &photo}))
	require.NoError(t, userRepo.Create(context.Background(), users.User{ID: "u-2", Name: "Beto", Email: "beto@example.com"}))

	up := mediamem.NewUploader("")
	return posts.NewService(mem.NewPostRepo(userRepo), media.NewRelay(up, 0)), up
}

func TestCreateAndFeed(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u-1", posts.CreateInput{Content: "  "})
	assert.ErrorIs(t, err, posts.ErrContentRequired)

	first, err := svc.Create(ctx, "u-1", posts.CreateInput{Content: "hola", Location: "Lima"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Create(ctx, "u-2", posts.CreateInput{Content: "chau"})
	require.NoError(t, err)

	feed, err := svc.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, first.ID, feed[1].ID)
	assert.Equal(t, "Ana", feed[1].OwnerName)
	require.NotNil(t, feed[1].OwnerPhotoURL)
	require.NotNil(t, feed[1].Location)
	assert.Equal(t, "Lima", *feed[1].Location)
	assert.NotNil(t, feed[0].Likes)
	assert.Empty(t, feed[0].Likes)
}

func TestCreate_UploadFailureAborts(t *testing.T) {
	svc, up := newService(t)
	up.FailWith(errors.New("host down"))

	_, err := svc.Create(context.Background(), "u-1", posts.CreateInput{
		Content: "foto",
		Photo:   &media.File{Filename: "a.png", ContentType: "image/png", Data: pngBytes},
	})
	assert.ErrorIs(t, err, media.ErrUploadFailed)

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestToggleLike(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, "u-1", posts.CreateInput{Content: "hola"})
	require.NoError(t, err)

	liked, likes, err := svc.ToggleLike(ctx, p.ID, "u-2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"u-2"}, likes)

	liked, likes, err = svc.ToggleLike(ctx, p.ID, "u-2")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, likes)

	_, _, err = svc.ToggleLike(ctx, "missing", "u-2")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, "u-1", posts.CreateInput{Content: "hola"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID, "u-2"), posts.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, p.ID, "u-1"))

	_, _, err = svc.ToggleLike(ctx, p.ID, "u-1")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}
