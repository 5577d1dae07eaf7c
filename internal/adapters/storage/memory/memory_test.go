package memory

import (
	"context"
	"testing"
	"time"

	"petplus/internal/domain/pets"
	"petplus/internal/domain/posts"
	"petplus/internal/domain/users"
	"petplus/internal/domain/vaccines"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_EmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	require.NoError(t, repo.Create(ctx, users.User{ID: "u-1", Name: "Ana", Email: " Ana@Example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "u-2", Email: "ana@example.COM"}), users.ErrEmailTaken)

	ok, err := repo.EmailExists(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
}

func TestPetRepo_DeleteCascadesVaccines(t *testing.T) {
	ctx := context.Background()
	usersRepo := NewUserRepo()
	vaccineRepo := NewVaccineRepo()
	petRepo := NewPetRepo(usersRepo, vaccineRepo)

	now := time.Now()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p-1", OwnerUserID: "u-1", Name: "Rex", Type: pets.TypePersonal, Status: pets.StatusPersonal, CreatedAt: now}))
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p-2", OwnerUserID: "u-1", Name: "Toby", Type: pets.TypePersonal, Status: pets.StatusPersonal, CreatedAt: now}))
	require.NoError(t, vaccineRepo.Create(ctx, vaccines.Vaccine{ID: "v-1", PetID: "p-1", Name: "Rabia", Date: now}))
	require.NoError(t, vaccineRepo.Create(ctx, vaccines.Vaccine{ID: "v-2", PetID: "p-2", Name: "Rabia", Date: now}))

	assert.ErrorIs(t, petRepo.Delete(ctx, "p-1", "u-2"), pets.ErrNotFound)
	require.NoError(t, petRepo.Delete(ctx, "p-1", "u-1"))

	got, err := vaccineRepo.ListByPets(ctx, []string{"p-1", "p-2"})
	require.NoError(t, err)
	assert.Empty(t, got["p-1"])
	assert.Len(t, got["p-2"], 1)
}

func TestPetRepo_MarkAdoptedOnlyWhenAvailable(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo(NewUserRepo())

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p-1", OwnerUserID: "u-1", Type: pets.TypeAdoption, Status: pets.StatusAvailable}))

	p, err := repo.MarkAdopted(ctx, "p-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, p.Status)

	_, err = repo.MarkAdopted(ctx, "p-1", "u-1")
	assert.Error(t, err)
}

func TestPostRepo_FeedCarriesAuthorAndLikes(t *testing.T) {
	ctx := context.Background()
	usersRepo := NewUserRepo()
	require.NoError(t, usersRepo.Create(ctx, users.User{ID: "u-1", Name: "Ana", Email: "ana@example.com"}))

	repo := NewPostRepo(usersRepo)
	require.NoError(t, repo.Create(ctx, posts.Post{ID: "b-1", OwnerUserID: "u-1", Content: "hola", CreatedAt: time.Now()}))

	liked, likes, err := repo.ToggleLike(ctx, "b-1", "u-2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"u-2"}, likes)

	feed, err := repo.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Ana", feed[0].OwnerName)
	assert.Equal(t, []string{"u-2"}, feed[0].Likes)

	_, _, err = repo.ToggleLike(ctx, "missing", "u-2")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPetRepo_SearchWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	usersRepo := NewUserRepo()
	require.NoError(t, usersRepo.Create(ctx, users.User{ID: "u-1", Name: "Ana", Email: "ana@example.com"}))
	repo := NewPetRepo(usersRepo)

	now := time.Now()
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p-1", OwnerUserID: "u-1", Name: "Rex", Type: pets.TypeAdoption, Status: pets.StatusAvailable, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p-2", OwnerUserID: "u-1", Name: "Rex_100%", Type: pets.TypeAdoption, Status: pets.StatusAvailable, CreatedAt: now}))

	got, err := repo.SearchAdoption(ctx, pets.SearchFilter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-2", got[0].ID)

	got, err = repo.SearchAdoption(ctx, pets.SearchFilter{Search: "x_1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-2", got[0].ID)
}
