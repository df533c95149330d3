package recommendation

import "encoding/json"

// Request is the caller's ask. CountryHeader carries the X-Country header and never comes from the body.
type Request struct {
	Destination   string `json:"destination"`
	Locale        string `json:"locale"`
	CountryHeader string `json:"-"`
}

// RecommendationSet is both the model output shape and, once links are filled in, the response body.
// Fields the model adds beyond the known ones are kept in Extra and written back out.
type RecommendationSet struct {
	Destination string                     `json:"destination,omitempty" jsonschema:"nullable,description=The destination the list was built for"`
	Categories  []Category                 `json:"categories" jsonschema:"description=Romance then Mystery & Thriller then Historical Fiction then Other Suggestions"`
	Extra       map[string]json.RawMessage `json:"-"`
}

type Category struct {
	Name  string                     `json:"name"`
	Books []Book                     `json:"books" jsonschema:"description=Exactly three books"`
	Extra map[string]json.RawMessage `json:"-"`
}

type Book struct {
	Title  string                     `json:"title"`
	Author string                     `json:"author"`
	Why    string                     `json:"why,omitempty" jsonschema:"nullable,description=At most 30 words specific to the place"`
	ISBN13 string                     `json:"isbn13,omitempty"`
	Links  *Links                     `json:"links,omitempty" jsonschema:"description=Retailer search links added by the server"`
	Extra  map[string]json.RawMessage `json:"-"`
}

type Links struct {
	Paperback string `json:"paperback"`
	Kindle    string `json:"kindle"`
	Audio     string `json:"audio"`
}

// Result is what the service hands back to transports.
type Result struct {
	Set     *RecommendationSet
	Country string
	Domain  string
}

// BookCount returns the number of books across all categories.
func (s *RecommendationSet) BookCount() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, category := range s.Categories {
		total += len(category.Books)
	}
	return total
}
