package recommendation

import (
	"net/url"
	"strings"
)

// url.QueryEscape is stricter than the browser encodeURIComponent; undo the differences.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s so that only A-Z a-z 0-9 - _ . ! ~ * ' ( ) survive unescaped.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BuildLinks returns the three search links for a book on domain.
func BuildLinks(domain, title, author string) Links {
	base := "https://" + domain + "/s?k=" + EncodeURIComponent(title+" "+author)
	return Links{
		Paperback: base + "+paperback",
		Kindle:    base + "+kindle",
		Audio:     base + "+audiobook",
	}
}

// AddLinks fills Links on every book in set, replacing anything the model supplied.
func AddLinks(set *RecommendationSet, domain string) {
	if set == nil {
		return
	}
	for i := range set.Categories {
		books := set.Categories[i].Books
		for j := range books {
			links := BuildLinks(domain, books[j].Title, books[j].Author)
			books[j].Links = &links
		}
	}
}
