package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

var (
	// ErrUnknownArtifact is returned for keys outside the registry.
	ErrUnknownArtifact = errors.New("unknown artifact")
	// ErrArtifactActivated is returned when an artifact is activated twice.
	ErrArtifactActivated = errors.New("artifact already activated")
)

// Activator applies the profile to the skeleton tree: it moves template
// stubs to their destinations and substitutes placeholder tokens in
// activated files. Inert stubs are never rewritten, and each artifact
// activates at most once.
type Activator struct {
	root      string
	subs      []Substitution
	features  profile.FeatureSet
	framework profile.TestingFramework
	activated map[string]bool
}

// NewActivator builds an activator for the skeleton at root.
func NewActivator(root string, p *profile.Profile) *Activator {
	return &Activator{
		root:      root,
		subs:      Substitutions(p),
		features:  p.Features,
		framework: p.Testing,
		activated: map[string]bool{},
	}
}

// Activate moves the artifact's stub to its destination and substitutes
// tokens in the result. When the artifact's gate is off it returns
// ("", false, nil) and leaves the stub untouched. Activating the same key
// twice is an error.
func (a *Activator) Activate(key string) (dest string, activated bool, err error) {
	art, ok := LookupArtifact(key)
	if !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownArtifact, key)
	}
	if a.activated[key] {
		return "", false, fmt.Errorf("%w: %q", ErrArtifactActivated, key)
	}
	if art.Feature != "" && !a.features.Has(art.Feature) {
		return "", false, nil
	}
	if art.Framework != "" && a.framework != art.Framework {
		return "", false, nil
	}

	dest = applyAll(art.Dest, a.subs)
	srcPath := filepath.Join(a.root, filepath.FromSlash(art.Source))
	destPath := filepath.Join(a.root, filepath.FromSlash(dest))

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", false, fmt.Errorf("activating %s: %w", key, err)
	}
	if err := os.Rename(srcPath, destPath); err != nil {
		return "", false, fmt.Errorf("activating %s: %w", key, err)
	}
	if err := a.substituteFile(destPath); err != nil {
		return "", false, fmt.Errorf("activating %s: %w", key, err)
	}

	a.activated[key] = true
	return dest, true, nil
}

// SubstituteFile substitutes tokens in a file that is already in place,
// such as the license.
func (a *Activator) SubstituteFile(rel string) error {
	path := filepath.Join(a.root, filepath.FromSlash(rel))
	if err := a.substituteFile(path); err != nil {
		return fmt.Errorf("substituting %s: %w", rel, err)
	}
	return nil
}

// Prepend writes text in front of an activated file's current content. The
// strict static-analysis variant uses it to put the include block on the
// first line of the generated phpstan config.
func (a *Activator) Prepend(rel, text string) error {
	path := filepath.Join(a.root, filepath.FromSlash(rel))
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("prepending to %s: %w", rel, err)
	}
	if err := os.WriteFile(path, append([]byte(text), content...), 0644); err != nil {
		return fmt.Errorf("prepending to %s: %w", rel, err)
	}
	return nil
}

func (a *Activator) substituteFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	replaced := applyAll(string(content), a.subs)
	return os.WriteFile(path, []byte(replaced), 0644)
}
