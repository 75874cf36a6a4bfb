package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_MarshalKeepsInsertionOrder(t *testing.T) {
	c := Collection{
		{ISBN: "10", Book: Book{Author: "B", Title: "Second", Reviews: map[string]string{}}},
		{ISBN: "2", Book: Book{Author: "A", Title: "First", Reviews: map[string]string{}}},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"10":{"author":"B","title":"Second","reviews":{}},"2":{"author":"A","title":"First","reviews":{}}}`,
		string(data))
}

func TestCollection_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Collection(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCollection_MarshalDoesNotEscapeHTML(t *testing.T) {
	data, err := json.Marshal(Collection{{ISBN: "1", Book: Book{Title: "Tom & Jerry"}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tom & Jerry")
}

func TestCollection_UnmarshalKeepsDocumentOrder(t *testing.T) {
	var c Collection
	err := json.Unmarshal([]byte(`{
		"9": {"author": "Honoré de Balzac", "title": "Le Père Goriot", "reviews": {}},
		"1": {"author": "Chinua Achebe", "title": "Things Fall Apart", "reviews": {"ann": "classic"}}
	}`), &c)
	require.NoError(t, err)

	assert.Equal(t, []string{"9", "1"}, c.ISBNs())
	b, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "classic", b.Reviews["ann"])
}

func TestCollection_UnmarshalRejectsArray(t *testing.T) {
	var c Collection
	assert.Error(t, json.Unmarshal([]byte(`[]`), &c))
}
