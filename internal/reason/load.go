package reason

import (
	"fmt"
	"os"

	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/yamlschema"
)

const tableSchema = `{
  "type": "object",
  "required": ["entries"],
  "properties": {
    "name": {"type": "string"},
    "entries": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["category", "keywords"],
        "additionalProperties": false,
        "properties": {
          "category": {"enum": [
            "economic", "tuition-arrears", "parent-relocation", "low-interest",
            "employment", "health", "bad-companionship", "school-distance", "other"
          ]},
          "keywords": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
        }
      }
    }
  }
}`

// ParseTable decodes a keyword table from YAML:
//
//	name: my-district
//	entries:
//	  - category: economic
//	    keywords: [biaya, ekonomi]
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yamlschema.Decode("reason-table", tableSchema, data, &t); err != nil {
		return nil, err
	}
	for i, e := range t.Entries {
		if _, ok := record.ParseReason(string(e.Category)); !ok {
			return nil, fmt.Errorf("entry %d: unknown category %q", i, e.Category)
		}
	}
	if t.Name == "" {
		t.Name = "custom"
	}
	return &t, nil
}

// LoadTable reads and parses a keyword table file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("load keyword table %s: %w", path, err)
	}
	return t, nil
}
