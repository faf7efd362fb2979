package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// checkFileName is the release check stamp kept in the pkgsmith home
// directory, next to config.yaml.
const checkFileName = "release-check.json"

// checkTTL is how long a stamp stays fresh. While fresh, commands reuse the
// recorded result instead of touching the GitHub API.
const checkTTL = 24 * time.Hour

// releaseCheck records the outcome of the most recent release lookup.
type releaseCheck struct {
	Current   string    `json:"current"`
	Latest    string    `json:"latest"`
	URL       string    `json:"url,omitempty"`
	Newer     bool      `json:"newer"`
	CheckedAt time.Time `json:"checked_at"`
}

// readCheck loads the stamp from dir. A missing file is not an error: it
// returns nil and the caller schedules the first lookup.
func readCheck(dir string) (*releaseCheck, error) {
	data, err := os.ReadFile(filepath.Join(dir, checkFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading release check: %w", err)
	}

	var c releaseCheck
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing release check: %w", err)
	}
	return &c, nil
}

// write stores the stamp in dir, creating the directory if needed.
func (c *releaseCheck) write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding release check: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, checkFileName), data, 0644); err != nil {
		return fmt.Errorf("writing release check: %w", err)
	}
	return nil
}

// stale reports whether the stamp is missing or older than ttl.
func (c *releaseCheck) stale(ttl time.Duration) bool {
	return c == nil || time.Since(c.CheckedAt) > ttl
}
