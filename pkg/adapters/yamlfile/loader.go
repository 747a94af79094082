// Package yamlfile loads state definitions from YAML or JSON documents.
//
// The document carries a top-level "states" list. Each entry is either a
// bare string, shorthand for an unconditional state of that name, or a
// mapping with the full descriptor fields:
//
//	states:
//	  - open
//	  - name: closed
//	    conditions: closed=true
//	    overrides: open
//	  - name: assigned
//	    conditions: assignee
//	    counter: unassigned
//
// Scalar values are accepted wherever a list is expected.
package yamlfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verdict-dev/verdict/internal/compiler"
	"github.com/verdict-dev/verdict/pkg/domain"
)

type document struct {
	States []any `yaml:"states" json:"states"`
}

// Loader reads state definitions from a single file. It implements
// ports.StateLoader.
type Loader struct {
	path string
}

// New returns a loader for the given path. The file format is chosen by
// extension: .json is parsed as JSON, everything else as YAML.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the file into raw state descriptors. The
// descriptors are not validated here; graph construction owns that.
func (l *Loader) Load() ([]domain.RawState, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading state definitions: %w", err)
	}
	return Parse(data, filepath.Ext(l.path))
}

// Parse decodes state definitions from an in-memory document. The ext
// argument selects the format the way Load does; an empty ext means
// YAML.
func Parse(data []byte, ext string) ([]domain.RawState, error) {
	var doc document
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing state definitions: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing state definitions: %w", err)
		}
	}
	if doc.States == nil {
		return nil, fmt.Errorf("parsing state definitions: missing \"states\" list")
	}
	return compiler.DecodeStates(doc.States)
}
