package profile

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// minimumPHP maps each supported Laravel line to the lowest PHP release it
// runs on.
var minimumPHP = map[string]string{
	"10": "8.1",
	"11": "8.2",
	"12": "8.2",
}

// PHPVersions lists the selectable PHP releases, oldest first.
func PHPVersions() []string {
	return []string{"8.1", "8.2", "8.3", "8.4"}
}

// LaravelVersions lists the selectable Laravel major lines, oldest first.
func LaravelVersions() []string {
	return []string{"10", "11", "12"}
}

// MinimumPHPFor returns the lowest PHP release supported by the given
// Laravel line.
func MinimumPHPFor(laravel string) (string, error) {
	min, ok := minimumPHP[laravel]
	if !ok {
		return "", fmt.Errorf("laravel version %q: not a supported release", laravel)
	}
	return min, nil
}

// Compatible reports whether the PHP release meets the minimum required by
// the Laravel line.
func Compatible(php, laravel string) (bool, error) {
	min, err := MinimumPHPFor(laravel)
	if err != nil {
		return false, err
	}
	pv, err := semver.NewVersion(php)
	if err != nil {
		return false, fmt.Errorf("parsing php version %q: %w", php, err)
	}
	mv, err := semver.NewVersion(min)
	if err != nil {
		return false, fmt.Errorf("parsing minimum php version %q: %w", min, err)
	}
	return pv.Compare(mv) >= 0, nil
}

// CompatiblePHPVersions filters the PHP catalog down to releases the given
// Laravel line supports. An unknown line returns the full catalog so the
// caller's own validation can report it.
func CompatiblePHPVersions(laravel string) []string {
	var out []string
	for _, php := range PHPVersions() {
		ok, err := Compatible(php, laravel)
		if err != nil {
			return PHPVersions()
		}
		if ok {
			out = append(out, php)
		}
	}
	return out
}

// PHPConstraint renders the composer constraint for a PHP release.
func PHPConstraint(php string) string {
	return "^" + php
}

// LaravelConstraint renders the composer constraint for a Laravel line.
func LaravelConstraint(laravel string) string {
	return "^" + laravel + ".0"
}
