package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// newerAvailable reports whether latest is a strictly newer release than
// current. Both tolerate a leading "v". Versions that do not parse as
// semver (dev builds, commit hashes) return an error so callers can skip
// the comparison instead of guessing.
func newerAvailable(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	next, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return next.GreaterThan(cur), nil
}
