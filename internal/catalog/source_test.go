package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"3": {"author": "Dante Alighieri", "title": "The Divine Comedy", "reviews": {}},
		"1": {"author": "Chinua Achebe", "title": "Things Fall Apart", "reviews": {}}
	}`), 0o600))

	c, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, c.ISBNs())
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Load(context.Background())
	assert.Error(t, err)
}

func TestDefaultSource_Load(t *testing.T) {
	c, err := DefaultSource{}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, c, 10)

	b, ok := c.Get("7")
	require.True(t, ok)
	assert.Equal(t, "Njál's Saga", b.Title)
}
