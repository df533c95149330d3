package recommendation

import (
	"encoding/json"
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from model strings. A nil *Sanitizer is a no-op.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes tags and then unescapes entities so "Rock & Roll" comes back unchanged.
func (s *Sanitizer) Text(value string) string {
	if s == nil || value == "" {
		return value
	}
	return html.UnescapeString(s.policy.Sanitize(value))
}

// Set sanitises every model-provided string in place.
func (s *Sanitizer) Set(set *RecommendationSet) {
	if s == nil || set == nil {
		return
	}
	set.Destination = s.Text(set.Destination)
	s.extra(set.Extra)
	for i := range set.Categories {
		category := &set.Categories[i]
		category.Name = s.Text(category.Name)
		s.extra(category.Extra)
		for j := range category.Books {
			book := &category.Books[j]
			book.Title = s.Text(book.Title)
			book.Author = s.Text(book.Author)
			book.Why = s.Text(book.Why)
			book.ISBN13 = s.Text(book.ISBN13)
			s.extra(book.Extra)
		}
	}
}

// extra cleans string-valued extra fields. Other JSON values pass through.
func (s *Sanitizer) extra(fields map[string]json.RawMessage) {
	for key, raw := range fields {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			continue
		}
		cleaned, err := encodeNoEscape(s.Text(text))
		if err != nil {
			continue
		}
		fields[key] = cleaned
	}
}
