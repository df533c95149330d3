package recommendation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraFields_RoundTrip(t *testing.T) {
	text := `{"destination": "Paris", "tagline": "City of Light", "categories": [
		{"name": "Romance", "emoji": "❤", "books": [
			{"title": "A", "author": "B", "why": "c", "year": 1831, "links": {"paperback": "https://evil.example"}}
		]}
	]}`

	set, err := ParseModelOutput(text)
	require.NoError(t, err)
	assert.JSONEq(t, `"City of Light"`, string(set.Extra["tagline"]))
	assert.JSONEq(t, `"❤"`, string(set.Categories[0].Extra["emoji"]))
	assert.JSONEq(t, `1831`, string(set.Categories[0].Books[0].Extra["year"]))
	assert.NotContains(t, set.Categories[0].Books[0].Extra, "links")

	AddLinks(set, "amazon.fr")
	out, err := json.Marshal(set)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "City of Light", doc["tagline"])
	category := doc["categories"].([]any)[0].(map[string]any)
	assert.Equal(t, "❤", category["emoji"])
	book := category["books"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1831), book["year"])
	assert.Equal(t, "https://amazon.fr/s?k=A%20B+paperback", book["links"].(map[string]any)["paperback"])
}

func TestMarshalWithExtra(t *testing.T) {
	out, err := json.Marshal(Category{
		Name:  "Mystery & Thriller",
		Books: []Book{},
		Extra: map[string]json.RawMessage{"z": json.RawMessage(`[1, 2]`), "a": json.RawMessage(`"x"`)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Mystery & Thriller","books":[],"a":"x","z":[1,2]}`, string(out))

	out, err = encodeNoEscape(Book{Title: "Rock & Roll", Author: "X"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Rock & Roll","author":"X"}`, string(out))
}
