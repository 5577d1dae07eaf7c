package postgres

import (
	"strings"
	"testing"

	"petplus/internal/domain/pets"
	"petplus/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchAdoption_BaseOnly(t *testing.T) {
	query, args, err := buildSearchAdoption(pets.SearchFilter{})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query,
		"FROM pets p JOIN users u ON u.id = p.owner_id WHERE p.type = 'adoption' AND p.status = 'available' ORDER BY p.created_at DESC"), query)
	assert.Empty(t, args)
}

func TestBuildSearchAdoption_FixedOrderAndBoundParams(t *testing.T) {
	query, args, err := buildSearchAdoption(pets.SearchFilter{Species: "dog", Size: "large", Age: "2", Search: "rex'; DROP TABLE pets;--"})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query,
		"WHERE p.type = 'adoption' AND p.status = 'available' AND p.species = $1 AND p.size = $2 AND p.age = $3 AND (p.name ILIKE $4 OR p.breed ILIKE $5) ORDER BY p.created_at DESC"), query)
	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, []any{"dog", "large", "2", "%rex'; DROP TABLE pets;--%", "%rex'; DROP TABLE pets;--%"}, args)
	assert.Contains(t, query, "u.phone AS owner_phone")
}

func TestBuildSearchAdoption_SpeciesAndSearch(t *testing.T) {
	query, args, err := buildSearchAdoption(pets.SearchFilter{Species: "dog", Search: "rex"})
	require.NoError(t, err)

	assert.Contains(t, query, "AND p.species = $1 AND (p.name ILIKE $2 OR p.breed ILIKE $3)")
	assert.Equal(t, []any{"dog", "%rex%", "%rex%"}, args)
}

func TestBuildSearchAdoption_WildcardsAreLiteral(t *testing.T) {
	cases := map[string]string{
		"%":       `%\%%`,
		"a_b":     `%a\_b%`,
		`c:\pets`: `%c:\\pets%`,
		"100%":    `%100\%%`,
	}
	for in, want := range cases {
		_, args, err := buildSearchAdoption(pets.SearchFilter{Search: in})
		require.NoError(t, err)
		assert.Equal(t, []any{want, want}, args, "search %q", in)
	}
}

func TestBuildProfileUpdate(t *testing.T) {
	query, args, err := buildProfileUpdate("u-1", users.ProfileUpdate{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "UPDATE users SET name = $1, phone = $2 WHERE id = $3 RETURNING id, name"), query)
	assert.Equal(t, []any{"Ana", "1", "u-1"}, args)

	hash := "h"
	query, args, err = buildProfileUpdate("u-1", users.ProfileUpdate{Name: "Ana", Phone: "1", PasswordHash: &hash, SetPhoto: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "UPDATE users SET name = $1, phone = $2, password_hash = $3, photo_url = $4 WHERE id = $5"), query)
	require.Len(t, args, 5)
	assert.Equal(t, "h", args[2])
	assert.Nil(t, args[3])

	photo := "https://img/x.png"
	query, args, err = buildProfileUpdate("u-1", users.ProfileUpdate{Name: "Ana", Phone: "1", SetPhoto: true, PhotoURL: &photo})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "UPDATE users SET name = $1, phone = $2, photo_url = $3 WHERE id = $4"), query)
	assert.Equal(t, &photo, args[2])
}

func TestBuildPetUpdate_OnlySentFieldsPlusStatus(t *testing.T) {
	name := "Rex"
	query, args, err := buildPetUpdate("p-1", "u-1", pets.Update{Name: &name, Status: pets.StatusAvailable})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "UPDATE pets SET name = $1, status = $2 WHERE id = $3 AND owner_id = $4 RETURNING id, owner_id"), query)
	assert.Equal(t, []any{"Rex", "available", "p-1", "u-1"}, args)
}

func TestBuildVaccinesByPets_SingleBatchedQuery(t *testing.T) {
	query, args, err := buildVaccinesByPets([]string{"p-1", "p-2"})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM vaccines WHERE pet_id IN ($1,$2) ORDER BY date DESC")
	assert.Equal(t, []any{"p-1", "p-2"}, args)
}

func TestReturning_StripsAlias(t *testing.T) {
	assert.Equal(t, "RETURNING id, owner_id", returning([]string{"p.id", "p.owner_id"}))
}
