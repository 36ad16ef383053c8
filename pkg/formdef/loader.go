package formdef

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnknownForm is returned when a store has no definition for an id.
var ErrUnknownForm = errors.New("formdef: unknown form")

// Store keeps definitions keyed by id. It is safe for concurrent readers once
// built.
type Store struct {
	forms map[string]Definition
}

// NewStore builds a store from definitions. Ids must be unique.
func NewStore(defs ...Definition) (*Store, error) {
	store := &Store{forms: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := store.add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML definition file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		defs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if err := store.add(def); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Merge returns a store holding the definitions of s and other. Ids defined in
// both are an error.
func (s *Store) Merge(other *Store) (*Store, error) {
	merged := &Store{forms: make(map[string]Definition)}
	for _, src := range []*Store{s, other} {
		if src == nil {
			continue
		}
		for _, id := range src.IDs() {
			if err := merged.add(src.forms[id]); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

// Get returns the definition for id.
func (s *Store) Get(id string) (Definition, error) {
	if s != nil {
		if def, ok := s.forms[strings.TrimSpace(id)]; ok {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%w %q", ErrUnknownForm, id)
}

// IDs lists the stored ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Store) add(def Definition) error {
	def.ID = strings.TrimSpace(def.ID)
	if err := Check(def); err != nil {
		return err
	}
	if existing, exists := s.forms[def.ID]; exists {
		return fmt.Errorf("formdef: duplicate form %q (%s, %s)", def.ID, existing.Source, def.Source)
	}
	s.forms[def.ID] = def
	return nil
}

type documentFile struct {
	Forms []Definition `json:"forms" yaml:"forms"`
}

// Parse decodes a JSON or YAML document holding either a single definition or
// a `forms` list. source labels errors and is recorded on each definition.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: file %s is empty", source)
	}

	var (
		doc    documentFile
		single Definition
	)
	switch {
	case json.Unmarshal(data, &doc) == nil && len(doc.Forms) > 0:
	case json.Unmarshal(data, &single) == nil && single.ID != "":
		doc.Forms = []Definition{single}
	case yaml.Unmarshal(data, &doc) == nil && len(doc.Forms) > 0:
	case yaml.Unmarshal(data, &single) == nil && single.ID != "":
		doc.Forms = []Definition{single}
	default:
		return nil, fmt.Errorf("formdef: parse %s: no form definitions found in JSON or YAML", source)
	}

	out := make([]Definition, 0, len(doc.Forms))
	for _, def := range doc.Forms {
		def.Source = source
		if err := Check(def); err != nil {
			return nil, fmt.Errorf("%w (%s)", err, source)
		}
		out = append(out, def)
	}
	return out, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
