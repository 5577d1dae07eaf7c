package users_test

import (
	"context"
	"testing"

	mediamem "petplus/internal/adapters/media/memory"
	mem "petplus/internal/adapters/storage/memory"
	"petplus/internal/domain/media"
	"petplus/internal/domain/users"
	"petplus/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type stubIssuer struct{}

func (stubIssuer) Issue(c auth.Claims) (string, error) { return "token-" + c.UserID, nil }

func newService(t *testing.T) (*users.Service, users.Repository, *mediamem.Uploader) {
	t.Helper()
	repo := mem.NewUserRepo()
	up := mediamem.NewUploader("")
	return users.NewService(repo, stubIssuer{}, media.NewRelay(up, 0)), repo, up
}

func validInput() users.RegisterInput {
	return users.RegisterInput{
		Name:            "Ana",
		Email:           "  Ana@Example.COM ",
		Phone:           "555-0100",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister_StoresHashAndNormalizedEmail(t *testing.T) {
	svc, repo, _ := newService(t)

	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestRegister_ValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*users.RegisterInput)
		want   error
	}{
		{"missing phone", func(in *users.RegisterInput) { in.Phone = " " }, users.ErrMissingFields},
		{"missing field wins over mismatch", func(in *users.RegisterInput) { in.Name = ""; in.ConfirmPassword = "x" }, users.ErrMissingFields},
		{"mismatch", func(in *users.RegisterInput) { in.ConfirmPassword = "secret2" }, users.ErrPasswordMismatch},
		{"mismatch wins over short", func(in *users.RegisterInput) { in.Password = "abc"; in.ConfirmPassword = "abd" }, users.ErrPasswordMismatch},
		{"too short", func(in *users.RegisterInput) { in.Password = "abc"; in.ConfirmPassword = "abc" }, users.ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			in := validInput()
			tc.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)

			exists, _ := repo.EmailExists(context.Background(), in.Email)
			assert.False(t, exists)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "ana@example.com"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestRegister_RejectedPhotoTouchesNothing(t *testing.T) {
	svc, repo, up := newService(t)

	in := validInput()
	in.Photo = &media.File{Filename: "me.gif", ContentType: "image/gif", Data: pngBytes}

	_, err := svc.Register(context.Background(), in)
	var rej *media.RejectedError
	require.ErrorAs(t, err, &rej)

	exists, _ := repo.EmailExists(context.Background(), in.Email)
	assert.False(t, exists)
	assert.Zero(t, up.Count())
}

func TestRegister_WithPhoto(t *testing.T) {
	svc, _, up := newService(t)

	in := validInput()
	in.Photo = &media.File{Filename: "me.png", ContentType: "image/png", Data: pngBytes}

	u, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, u.PhotoURL)
	assert.Contains(t, *u.PhotoURL, "/users/user-")
	assert.Equal(t, 1, up.Count())
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService(t)
	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token-"+u.ID, res.Token)
	assert.Equal(t, auth.Claims{UserID: u.ID, Name: "Ana", Email: "ana@example.com"}, res.Claims)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, users.ErrMissingFields)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	svc, repo, _ := newService(t)
	in := validInput()
	in.Photo = &media.File{Filename: "me.png", ContentType: "image/png", Data: pngBytes}
	u, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	oldHash := u.PasswordHash

	// sin password ni foto: se conservan
	updated, err := svc.UpdateProfile(context.Background(), u.ID, users.UpdateProfileInput{Name: "Ana María", Phone: "555-0199"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, oldHash, updated.PasswordHash)
	assert.Equal(t, u.PhotoURL, updated.PhotoURL)

	// password nueva
	_, err = svc.UpdateProfile(context.Background(), u.ID, users.UpdateProfileInput{Name: "Ana", Phone: "1", Password: "newpass", ConfirmPassword: "newpass"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "ana@example.com", "newpass")
	assert.NoError(t, err)

	// removePhoto
	updated, err = svc.UpdateProfile(context.Background(), u.ID, users.UpdateProfileInput{Name: "Ana", Phone: "1", RemovePhoto: true})
	require.NoError(t, err)
	assert.Nil(t, updated.PhotoURL)

	stored, _ := repo.GetByID(context.Background(), u.ID)
	assert.Nil(t, stored.PhotoURL)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), u.ID, users.UpdateProfileInput{Name: "Ana"})
	assert.ErrorIs(t, err, users.ErrProfileFields)

	_, err = svc.UpdateProfile(context.Background(), u.ID, users.UpdateProfileInput{Name: "Ana", Phone: "1", Password: "abcdef", ConfirmPassword: "abcdeg"})
	assert.ErrorIs(t, err, users.ErrPasswordMismatch)

	_, err = svc.UpdateProfile(context.Background(), "missing", users.UpdateProfileInput{Name: "Ana", Phone: "1"})
	assert.ErrorIs(t, err, users.ErrNotFound)
}
