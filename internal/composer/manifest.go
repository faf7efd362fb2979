package composer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Manifest is a typed composer.json document. Field order here fixes the
// key order of freshly written manifests.
type Manifest struct {
	Name             string            `json:"name,omitempty"`
	Description      string            `json:"description,omitempty"`
	Keywords         []string          `json:"keywords,omitempty"`
	Homepage         string            `json:"homepage,omitempty"`
	License          string            `json:"license,omitempty"`
	Authors          []Author          `json:"authors,omitempty"`
	Require          map[string]string `json:"require,omitempty"`
	RequireDev       map[string]string `json:"require-dev,omitempty"`
	Autoload         *Autoload         `json:"autoload,omitempty"`
	AutoloadDev      *Autoload         `json:"autoload-dev,omitempty"`
	Scripts          map[string]any    `json:"scripts,omitempty"`
	Config           map[string]any    `json:"config,omitempty"`
	Extra            map[string]any    `json:"extra,omitempty"`
	MinimumStability string            `json:"minimum-stability,omitempty"`
	PreferStable     bool              `json:"prefer-stable,omitempty"`
}

// Author is one entry of the manifest authors list.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Autoload holds the PSR-4 mapping of an autoload section.
type Autoload struct {
	PSR4 map[string]string `json:"psr-4,omitempty"`
}

// ToMap converts the manifest into the generic document form used by Merge.
func (m *Manifest) ToMap() (map[string]any, error) {
	data, err := m.MarshalPretty()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("converting manifest to document: %w", err)
	}
	return out, nil
}

// MarshalPretty renders the manifest with composer's four-space indentation
// and a trailing newline.
func (m *Manifest) MarshalPretty() ([]byte, error) {
	return marshalPretty(m)
}

func marshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return buf.Bytes(), nil
}
