// Package yamlschema decodes YAML table files after validating them against
// an embedded JSON Schema, so a malformed keyword or rule file is rejected
// with a precise location instead of silently producing an empty table.
package yamlschema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidationError reports a document that does not conform to its schema.
type ValidationError struct {
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: schema validation failed: %v", e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Decode validates the YAML document data against schemaJSON and then
// decodes it into v. name identifies the schema in errors and the cache.
func Decode(name, schemaJSON string, data []byte, v any) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: parse yaml: %w", name, err)
	}

	// Round-trip through JSON so the validator sees JSON-native types
	// (float64 numbers, map[string]any objects).
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: convert yaml: %w", name, err)
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("%s: convert yaml: %w", name, err)
	}

	compiled, err := compile(name, schemaJSON)
	if err != nil {
		return fmt.Errorf("%s: compile schema: %w", name, err)
	}
	if err := compiled.Validate(instance); err != nil {
		return &ValidationError{Name: name, Err: err}
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: decode: %w", name, err)
	}
	return nil
}

func compile(name, schemaJSON string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def any
	if err := json.Unmarshal([]byte(schemaJSON), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
