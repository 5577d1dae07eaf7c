package postgres

import (
	"context"
	"io/fs"
	"regexp"
	"testing"
	"time"

	"petplus/internal/domain/pets"
	"petplus/internal/domain/users"
	"petplus/internal/domain/vaccines"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUsersRepo_Create_UniqueViolationIsEmailTaken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), users.User{ID: "u-1", Email: "A@x.com", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_GetByEmail_NormalizesAndMapsNoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "  ANA@example.com ")
	assert.ErrorIs(t, err, users.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_UpdateProfile(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET name = $1, phone = $2 WHERE id = $3")).
		WithArgs("Ana", "1", "u-1").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "Ana", "ana@example.com", "1", "hash", nil, now))

	u, err := repo.UpdateProfile(context.Background(), "u-1", users.ProfileUpdate{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Nil(t, u.PhotoURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_SearchAdoption(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	now := time.Now()

	cols := []string{"id", "owner_id", "name", "species", "breed", "age", "size", "gender", "type", "status",
		"description", "photo_url", "created_at", "owner_name", "owner_phone", "owner_email"}

	mock.ExpectQuery(regexp.QuoteMeta("AND p.species = $1 AND (p.name ILIKE $2 OR p.breed ILIKE $3) ORDER BY p.created_at DESC")).
		WithArgs("dog", "%rex%", "%rex%").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p-2", "u-1", "Rexona", "dog", "mixed", "2", "m", "f", "adoption", "available", "", nil, now, "Ana", "111", "ana@x.com").
			AddRow("p-1", "u-2", "Toby", "dog", "Rex terrier", "1", "s", "m", "adoption", "available", "", "https://img/1.png", now.Add(-time.Hour), "Beto", "222", "beto@x.com"))

	items, err := repo.SearchAdoption(context.Background(), pets.SearchFilter{Species: "dog", Search: "rex"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p-2", items[0].ID)
	assert.Equal(t, pets.StatusAvailable, items[0].Status)
	assert.Equal(t, &pets.Contact{Name: "Ana", Phone: "111", Email: "ana@x.com"}, items[0].Owner)
	require.NotNil(t, items[1].PhotoURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_Delete_NotOwnedIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pets WHERE id = $1 AND owner_id = $2")).
		WithArgs("p-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "p-1", "u-2"), pets.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByID_MalformedIDIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM pets p WHERE p.id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestVaccinesRepo_ListByPets_Groups(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaccinesRepo(db)
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vaccines WHERE pet_id IN ($1,$2)")).
		WithArgs("p-1", "p-2").
		WillReturnRows(sqlmock.NewRows(vaccineColumns).
			AddRow("v-1", "p-1", "Parvo", d1, nil, "", "", d1).
			AddRow("v-2", "p-1", "Rabies", d2, d1, "Dr", "", d2).
			AddRow("v-3", "p-2", "Rabies", d2, nil, "", "", d2))

	got, err := repo.ListByPets(context.Background(), []string{"p-1", "p-2"})
	require.NoError(t, err)
	require.Len(t, got["p-1"], 2)
	assert.Equal(t, "Parvo", got["p-1"][0].Name)
	require.NotNil(t, got["p-1"][1].NextDate)
	assert.Len(t, got["p-2"], 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaccinesRepo_Delete_ForeignVaccineKeepsRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewVaccinesRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vaccines WHERE id = $1 AND pet_id = $2")).
		WithArgs("v-1", "p-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "p-2", "v-1"), vaccines.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostsRepo_ToggleLike_InsertsWhenAbsent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2")).
		WithArgs("b-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_likes")).
		WithArgs("b-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM post_likes WHERE post_id IN ($1)")).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id"}).AddRow("b-1", "u-1").AddRow("b-1", "u-2"))
	mock.ExpectCommit()

	liked, likes, err := repo.ToggleLike(context.Background(), "b-1", "u-2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, []string{"u-1", "u-2"}, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostsRepo_Feed_EmptyLikesNeverNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostsRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts b JOIN users u ON u.id = b.owner_id ORDER BY b.created_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "content", "photo_url", "location", "created_at", "owner_name", "owner_photo_url"}).
			AddRow("b-1", "u-1", "hola", nil, "Lima", now, "Ana", nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM post_likes WHERE post_id IN ($1)")).
		WithArgs("b-1").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id"}))

	items, err := repo.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ana", items[0].OwnerName)
	assert.NotNil(t, items[0].Likes)
	assert.Empty(t, items[0].Likes)
	require.NotNil(t, items[0].Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	up, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
}
