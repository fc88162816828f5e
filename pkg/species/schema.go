package species

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// listSchemaJSON describes the body of GET on the collection.
const listSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id":        {"type": "integer", "minimum": 1},
      "nome":      {"type": ["string", "null"]},
      "descricao": {"type": ["string", "null"]}
    }
  }
}`

var (
	listSchema     *jsonschema.Schema
	listSchemaErr  error
	listSchemaOnce sync.Once
)

func compileListSchema() (*jsonschema.Schema, error) {
	listSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("species-list.json", strings.NewReader(listSchemaJSON)); err != nil {
			listSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		listSchema, listSchemaErr = compiler.Compile("species-list.json")
	})
	return listSchema, listSchemaErr
}

// decodeList validates body against the list schema and decodes it.
func decodeList(body []byte) ([]Species, error) {
	schema, err := compileListSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	items := make([]Species, 0)
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return items, nil
}
