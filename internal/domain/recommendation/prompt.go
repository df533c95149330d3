package recommendation

import "strings"

const DefaultSystemPrompt = `You are NomadReads, a travel-lit recommender.
Return STRICT JSON only with this shape:
{
  "destination": string,
  "categories": [
    {"name":"Romance","books":[{ "title":string,"author":string,"why":string,"isbn13":string? }]},
    {"name":"Mystery & Thriller","books":[...]},
    {"name":"Historical Fiction","books":[...]},
    {"name":"Other Suggestions","books":[...]}
  ]
}
Rules:
- 3 books per category (exactly).
- Prefer works tied to the place (setting, author, or theme).
- "why" ≤ 30 words, specific to the place.
- JSON only, no extra text.`

const DefaultUserPromptPrefix = "Destination: "

// Category names in the order the model is asked to return them.
var CategoryNames = []string{"Romance", "Mystery & Thriller", "Historical Fiction", "Other Suggestions"}

const (
	BooksPerCategory = 3
	MaxWhyWords      = 30
)

// PromptSet is the system prompt plus the prefix placed before the destination.
type PromptSet struct {
	System     string
	UserPrefix string
}

// NewPromptSet applies non-empty overrides to the defaults.
func NewPromptSet(system, userPrefix string) PromptSet {
	prompts := PromptSet{System: DefaultSystemPrompt, UserPrefix: DefaultUserPromptPrefix}
	if strings.TrimSpace(system) != "" {
		prompts.System = system
	}
	if userPrefix != "" {
		prompts.UserPrefix = userPrefix
	}
	return prompts
}

// UserPrompt embeds the destination as received, without trimming.
func (p PromptSet) UserPrompt(destination string) string {
	return p.UserPrefix + destination
}
