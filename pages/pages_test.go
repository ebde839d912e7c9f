package pages

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "privacy", "shipping", "terms"}, lib.Slugs())

	p, err := lib.Get("Shipping")
	require.NoError(t, err)
	assert.Equal(t, "shipping", p.Slug)
	assert.Equal(t, "Shipping", p.Title)
	assert.Contains(t, p.HTML, "<strong>$79 or more</strong>")
	assert.Contains(t, p.HTML, "<li>")
}

func TestGetUnknown(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	_, err = lib.Get("careers")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTitleFallsBackToSlug(t *testing.T) {
	lib, err := LoadFS(fstest.MapFS{
		"p/faq.md":    {Data: []byte("Just text.\n")},
		"p/notes.txt": {Data: []byte("# ignored")},
	}, "p")
	require.NoError(t, err)

	p, err := lib.Get("faq")
	require.NoError(t, err)
	assert.Equal(t, "faq", p.Title)
	assert.Equal(t, "<p>Just text.</p>\n", p.HTML)
	assert.Equal(t, []string{"faq"}, lib.Slugs())
}
