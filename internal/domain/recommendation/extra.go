package recommendation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

var (
	setFields      = []string{"destination", "categories"}
	categoryFields = []string{"name", "books"}
	bookFields     = []string{"title", "author", "why", "isbn13", "links"}
)

func (s *RecommendationSet) UnmarshalJSON(data []byte) error {
	type plain RecommendationSet
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := extraFields(data, setFields)
	if err != nil {
		return err
	}
	*s = RecommendationSet(p)
	s.Extra = extra
	return nil
}

func (s RecommendationSet) MarshalJSON() ([]byte, error) {
	type plain RecommendationSet
	return marshalWithExtra(plain(s), s.Extra)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := extraFields(data, categoryFields)
	if err != nil {
		return err
	}
	*c = Category(p)
	c.Extra = extra
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	type plain Category
	return marshalWithExtra(plain(c), c.Extra)
}

// UnmarshalJSON also takes isbn13 as a bare number, keeping its digits as written.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	aux := struct {
		*plain
		ISBN13 looseString `json:"isbn13"`
	}{plain: (*plain)(&Book{})}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	extra, err := extraFields(data, bookFields)
	if err != nil {
		return err
	}
	*b = Book(*aux.plain)
	b.ISBN13 = string(aux.ISBN13)
	b.Extra = extra
	return nil
}

func (b Book) MarshalJSON() ([]byte, error) {
	type plain Book
	return marshalWithExtra(plain(b), b.Extra)
}

// JSONSchemaExtend widens isbn13 to what models actually send.
func (Book) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Properties.Set("isbn13", &jsonschema.Schema{
		Description: "ISBN-13, as a string or a bare number",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "number"},
			{Type: "null"},
		},
	})
}

// looseString decodes a JSON string or number; null leaves it empty.
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = looseString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number: %w", err)
		}
		*l = looseString(n.String())
	}
	return nil
}

func extraFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, name := range known {
		delete(all, name)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithExtra encodes v without HTML escaping and appends extra keys in sorted order.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	known, err := encodeNoEscape(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return known, nil
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out bytes.Buffer
	out.Write(known[:len(known)-1])
	empty := bytes.Equal(known, []byte("{}"))
	for _, key := range keys {
		name, err := encodeNoEscape(key)
		if err != nil {
			return nil, err
		}
		if !empty {
			out.WriteByte(',')
		}
		empty = false
		out.Write(name)
		out.WriteByte(':')
		if err := json.Compact(&out, extra[key]); err != nil {
			return nil, fmt.Errorf("extra field %q: %w", key, err)
		}
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
