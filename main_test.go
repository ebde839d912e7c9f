package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "chilli-bites/inferno")
	assert.Contains(t, out, "catch_all")
}

func TestExportCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stores/hash/v3/catalog/products", r.URL.Path)
		io.WriteString(w, `{"data":[{"id":1,"name":"Beef Biltong","price":"12.50"}]}`)
	}))
	defer upstream.Close()

	t.Setenv("BIGCOMMERCE_API_URL", upstream.URL)
	t.Setenv("BIGCOMMERCE_STORE_HASH", "hash")
	t.Setenv("BIGCOMMERCE_ACCESS_TOKEN", "token")

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	out, err := run(t, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1 products")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))
}

func TestExportNeedsCredentials(t *testing.T) {
	t.Setenv("BIGCOMMERCE_STORE_HASH", "")
	t.Setenv("BIGCOMMERCE_ACCESS_TOKEN", "")
	_, err := run(t, "export", "--out", filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestCORSConfig(t *testing.T) {
	c := corsConfig([]string{"*"})
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)
	assert.Nil(t, c.AllowOriginFunc)
	assert.Empty(t, c.AllowOrigins)
	require.NoError(t, c.Validate())

	c = corsConfig(nil)
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)

	c = corsConfig([]string{"https://angusbiltong.com"})
	assert.False(t, c.AllowAllOrigins)
	assert.True(t, c.AllowCredentials)
	assert.Nil(t, c.AllowOriginFunc)
	assert.Equal(t, []string{"https://angusbiltong.com"}, c.AllowOrigins)
	require.NoError(t, c.Validate())
}
