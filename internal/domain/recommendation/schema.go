package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

var (
	schemaOnce       sync.Once
	outputSchema     *jsonschema.Schema
	compiledSchema   *gojsonschema.Schema
	schemaCompileErr error
)

// ErrNoJSONObject is returned when the model text contains no balanced object.
var ErrNoJSONObject = errors.New("no balanced JSON object found")

// ShapeError lists every way the model output departs from the schema.
type ShapeError struct {
	Problems []string
}

func (e *ShapeError) Error() string {
	return "model output does not match schema: " + strings.Join(e.Problems, "; ")
}

func loadSchema() {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	schema := reflector.Reflect(&RecommendationSet{})
	schema.Title = "NomadReads recommendation set"
	outputSchema = schema

	// gojsonschema only knows drafts up to 7; the keywords we emit mean the same there.
	forValidation := *schema
	forValidation.Version = ""
	data, err := json.Marshal(&forValidation)
	if err != nil {
		schemaCompileErr = fmt.Errorf("marshal output schema: %w", err)
		return
	}

	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	loader.AutoDetect = false
	compiledSchema, schemaCompileErr = loader.Compile(gojsonschema.NewBytesLoader(data))
}

// OutputSchema returns the JSON Schema the model output is checked against.
func OutputSchema() *jsonschema.Schema {
	schemaOnce.Do(loadSchema)
	return outputSchema
}

// OutputSchemaJSON returns OutputSchema indented for display.
func OutputSchemaJSON() ([]byte, error) {
	return json.MarshalIndent(OutputSchema(), "", "  ")
}

// ParseModelOutput reduces text to its first JSON object, validates it and decodes it.
func ParseModelOutput(text string) (*RecommendationSet, error) {
	schemaOnce.Do(loadSchema)
	if schemaCompileErr != nil {
		return nil, schemaCompileErr
	}

	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	result, err := compiledSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &ShapeError{Problems: problems}
	}

	var set RecommendationSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	return &set, nil
}

// ExtractJSONObject returns the first balanced {...} in s. Braces inside JSON strings are ignored.
func ExtractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], nil
				}
			}
		}
	}
	return "", ErrNoJSONObject
}

// SoftWarnings reports departures from the prompt rules that do not fail a request.
func SoftWarnings(set *RecommendationSet) []string {
	if set == nil {
		return nil
	}
	var warnings []string
	for _, category := range set.Categories {
		if len(category.Books) != BooksPerCategory {
			warnings = append(warnings, fmt.Sprintf("category %q has %d books", category.Name, len(category.Books)))
		}
		for _, book := range category.Books {
			if words := len(strings.Fields(book.Why)); words > MaxWhyWords {
				warnings = append(warnings, fmt.Sprintf("book %q has a %d word why", book.Title, words))
			}
		}
	}
	return warnings
}
