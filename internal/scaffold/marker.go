package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// MarkerFile names the file that marks a tree as a configurable skeleton.
// Configuration refuses to run without it, and the final step of a run
// offers to remove it.
const MarkerFile = ".pkgsmith.yml"

// ErrNotSkeleton is returned when a directory carries no skeleton marker.
var ErrNotSkeleton = errors.New("not a configurable package skeleton")

// Marker is the parsed content of the skeleton marker file.
type Marker struct {
	Skeleton string `yaml:"skeleton"`
	Version  int    `yaml:"version"`
}

// ReadMarker loads and parses the marker in dir.
func ReadMarker(dir string) (*Marker, error) {
	data, err := os.ReadFile(filepath.Join(dir, MarkerFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s has no %s", ErrNotSkeleton, dir, MarkerFile)
		}
		return nil, fmt.Errorf("reading skeleton marker: %w", err)
	}
	var m Marker
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing skeleton marker: %w", err)
	}
	return &m, nil
}

// IsSkeleton reports whether dir carries a readable skeleton marker.
func IsSkeleton(dir string) bool {
	_, err := ReadMarker(dir)
	return err == nil
}

// RemoveMarker deletes the marker so the tree stops being configurable.
func RemoveMarker(dir string) error {
	if err := os.Remove(filepath.Join(dir, MarkerFile)); err != nil {
		return fmt.Errorf("removing skeleton marker: %w", err)
	}
	return nil
}
