package schema

import (
	"fmt"
	"os"
	"slices"

	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/yamlschema"
)

// AutoDetect selects the profile by header matching.
const AutoDetect = "auto"

// Registry is an ordered set of profiles. Earlier profiles win detection ties.
type Registry struct {
	profiles []*Profile
}

// NewRegistry creates a registry holding the built-in profiles followed by
// extra.
func NewRegistry(extra ...*Profile) *Registry {
	return &Registry{profiles: append(Builtin(), extra...)}
}

// Profiles returns the registered profiles in priority order.
func (r *Registry) Profiles() []*Profile {
	return slices.Clone(r.profiles)
}

// Get returns the profile called name, or nil.
func (r *Registry) Get(name string) *Profile {
	for _, p := range r.profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Detect returns the profile whose sources best match header. Ties go to the
// earlier profile. When nothing matches, the english profile is returned so
// that canonical headers still work.
func (r *Registry) Detect(header []string) *Profile {
	keys := make(map[string]bool, len(header))
	for _, h := range header {
		keys[Key(h)] = true
	}
	var best *Profile
	bestScore := 0
	for _, p := range r.profiles {
		if s := p.score(keys); s > bestScore {
			best, bestScore = p, s
		}
	}
	if best == nil {
		return r.Get(ProfileEnglish)
	}
	return best
}

// Select resolves name against header: "" and "auto" detect, anything else
// must be a registered profile.
func (r *Registry) Select(name string, header []string) (*Profile, error) {
	if name == "" || name == AutoDetect {
		return r.Detect(header), nil
	}
	if p := r.Get(name); p != nil {
		return p, nil
	}
	return nil, &UnknownProfileError{Name: name}
}

// UnknownProfileError reports a profile name that is not registered.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown column profile %q", e.Name)
}

var profilesSchema = `{
  "type": "object",
  "required": ["profiles"],
  "additionalProperties": false,
  "properties": {
    "profiles": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "columns"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "columns": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["source", "field"],
              "additionalProperties": false,
              "properties": {
                "source": {"type": "string", "minLength": 1},
                "field": {"enum": ` + fieldEnum() + `}
              }
            }
          }
        }
      }
    }
  }
}`

func fieldEnum() string {
	s := "["
	for i, f := range record.AllFields() {
		if i > 0 {
			s += ", "
		}
		s += `"` + f + `"`
	}
	return s + "]"
}

// ParseProfiles decodes additional profiles from YAML:
//
//	profiles:
//	  - name: dinas-x
//	    columns:
//	      - {source: "Nama Lengkap", field: name}
//	      - {source: "Tanggal Lahir", field: birth_date}
func ParseProfiles(data []byte) ([]*Profile, error) {
	var f struct {
		Profiles []*Profile `yaml:"profiles"`
	}
	if err := yamlschema.Decode("column-profiles", profilesSchema, data, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, p := range Builtin() {
		seen[p.Name] = true
	}
	for _, p := range f.Profiles {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
	}
	return f.Profiles, nil
}

// LoadProfiles reads a profile file.
func LoadProfiles(path string) ([]*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column profiles: %w", err)
	}
	ps, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("load column profiles %s: %w", path, err)
	}
	return ps, nil
}
