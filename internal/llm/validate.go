package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema that extracted model output must satisfy.
// Name doubles as the cache key for the compiled form, so it must be unique.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

var compiled sync.Map // schema name -> *jsonschema.Schema

// ValidateJSON checks raw against schema and reports failures as
// *ErrInvalidResponse. A nil schema accepts anything.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: string(raw), Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := schema.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: string(raw), Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: string(raw), Err: fmt.Errorf("%s: %w", schema.Name, err)}
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants the decoded form it would get from UnmarshalJSON,
	// so the Go map is round-tripped through JSON.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", s.Name, err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	actual, _ := compiled.LoadOrStore(s.Name, sch)
	return actual.(*jsonschema.Schema), nil
}
