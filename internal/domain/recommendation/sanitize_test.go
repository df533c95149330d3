package recommendation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_Text(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "Rock & Roll", s.Text("Rock & Roll"))
	assert.Equal(t, "Lisbon's light", s.Text("Lisbon's light"))
	assert.Equal(t, "bold move", s.Text("<b>bold</b> move"))
	assert.Equal(t, "", s.Text("<script>alert(1)</script>"))
	assert.Equal(t, "", s.Text(""))
}

func TestSanitizer_Set(t *testing.T) {
	set := &RecommendationSet{
		Destination: "<i>Paris</i>",
		Categories: []Category{{
			Name: "Romance<br>",
			Books: []Book{{
				Title:  "<a href=\"x\">Chocolat</a>",
				Author: "Joanne Harris",
				Why:    "Village &amp; cocoa",
				ISBN13: "978<b>0</b>",
			}},
		}},
	}

	NewSanitizer().Set(set)

	assert.Equal(t, "Paris", set.Destination)
	assert.Equal(t, "Romance", set.Categories[0].Name)
	book := set.Categories[0].Books[0]
	assert.Equal(t, "Chocolat", book.Title)
	assert.Equal(t, "Joanne Harris", book.Author)
	assert.Equal(t, "Village & cocoa", book.Why)
	assert.Equal(t, "9780", book.ISBN13)
}

func TestSanitizer_NilIsNoop(t *testing.T) {
	var s *Sanitizer
	set := &RecommendationSet{Destination: "<b>Rome</b>"}
	s.Set(set)
	assert.Equal(t, "<b>Rome</b>", set.Destination)
	assert.Equal(t, "<i>x</i>", s.Text("<i>x</i>"))
}

func TestSanitizer_ExtraStrings(t *testing.T) {
	set := &RecommendationSet{
		Extra: map[string]json.RawMessage{
			"tagline": json.RawMessage(`"<b>Sun</b> & sea"`),
			"count":   json.RawMessage(`3`),
		},
		Categories: []Category{{Name: "Romance", Books: []Book{{
			Title: "A", Author: "B",
			Extra: map[string]json.RawMessage{"note": json.RawMessage(`"<script>x</script>ok"`)},
		}}}},
	}

	NewSanitizer().Set(set)

	assert.Equal(t, `"Sun & sea"`, string(set.Extra["tagline"]))
	assert.Equal(t, `3`, string(set.Extra["count"]))
	assert.Equal(t, `"ok"`, string(set.Categories[0].Books[0].Extra["note"]))
}
