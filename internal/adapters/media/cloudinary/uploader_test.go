package cloudinary

import (
	"testing"

	portmedia "petplus/internal/ports/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	p, err := profileFor("petplus", portmedia.KindPet)
	require.NoError(t, err)
	assert.Equal(t, "petplus/pets", p.Folder)
	assert.Equal(t, "c_limit,h_800,w_800", p.Transformation)

	p, err = profileFor("petplus", portmedia.KindPost)
	require.NoError(t, err)
	assert.Equal(t, "petplus/posts", p.Folder)
	assert.Equal(t, "c_limit,h_1200,w_1200", p.Transformation)

	p, err = profileFor("petplus", portmedia.KindUser)
	require.NoError(t, err)
	assert.Equal(t, "petplus/users", p.Folder)
	assert.Equal(t, "c_fill,g_face,h_400,w_400", p.Transformation)

	_, err = profileFor("petplus", portmedia.Kind("video"))
	assert.Error(t, err)
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
