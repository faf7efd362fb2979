package composer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrManifestUnreadable marks an existing composer.json that could not be
// parsed. The built manifest is preserved next to it so the run's work is
// not lost.
var ErrManifestUnreadable = errors.New("existing manifest is unreadable")

// Load reads a manifest file into the generic document form.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return doc, nil
}

// WriteFile persists the manifest at path. A pre-existing non-empty
// manifest is merged with the built one (existing values as base, built
// values as overlay). The merged return reports whether a merge happened.
//
// When the existing file cannot be parsed, the built manifest is written
// to path+".new" and the error wraps ErrManifestUnreadable; callers treat
// this as a warning, not a failed run.
func WriteFile(path string, m *Manifest) (merged bool, err error) {
	existing, statErr := os.Stat(path)
	fresh := statErr != nil || existing.Size() == 0 || isBlank(path)

	if fresh {
		data, err := m.MarshalPretty()
		if err != nil {
			return false, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return false, fmt.Errorf("writing manifest %s: %w", path, err)
		}
		return false, nil
	}

	base, loadErr := Load(path)
	if loadErr != nil {
		data, err := m.MarshalPretty()
		if err != nil {
			return false, err
		}
		if err := os.WriteFile(path+".new", data, 0644); err != nil {
			return false, fmt.Errorf("writing fallback manifest: %w", err)
		}
		return false, fmt.Errorf("%w: %v", ErrManifestUnreadable, loadErr)
	}

	overlay, err := m.ToMap()
	if err != nil {
		return false, err
	}
	mergedDoc := Merge(base, overlay)
	data, err := marshalPretty(mergedDoc)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return true, fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return true, nil
}

func isBlank(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(data)) == ""
}
