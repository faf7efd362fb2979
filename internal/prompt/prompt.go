// Package prompt collects the package profile interactively. Prompts run
// as a sequence of small huh forms so each step can derive its default
// from the answers before it, the way the questions build on each other.
package prompt

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

// accessible switches huh to its line-based accessible mode. Screen-reader
// users opt in via ACCESSIBLE; piped stdin gets it automatically.
var accessible = os.Getenv("ACCESSIBLE") != "" || !term.IsTerminal(int(os.Stdin.Fd()))

// SetAccessible overrides the automatic accessible-mode detection.
func SetAccessible(on bool) {
	accessible = on
}

// Defaults pre-fills prompts, typically from persisted user config and the
// directory being configured. Empty fields fall back to derived suggestions.
type Defaults struct {
	AuthorName     string
	AuthorEmail    string
	AuthorUsername string
	VendorName     string
	PackageSlug    string
	Description    string
}

// Collect asks for every profile field and returns the finalized profile.
func Collect(defaults Defaults) (*profile.Profile, error) {
	p := &profile.Profile{
		AuthorName:     defaults.AuthorName,
		AuthorEmail:    defaults.AuthorEmail,
		AuthorUsername: defaults.AuthorUsername,
		VendorName:     defaults.VendorName,
		PackageSlug:    defaults.PackageSlug,
		Description:    defaults.Description,
	}

	err := run(
		huh.NewInput().
			Title("Author name").
			Description("Used in composer.json and the license.").
			Value(&p.AuthorName).
			Validate(profile.ValidateAuthorName),
		huh.NewInput().
			Title("Author email").
			Value(&p.AuthorEmail).
			Validate(profile.ValidateEmail),
	)
	if err != nil {
		return nil, err
	}

	if p.AuthorUsername == "" {
		p.AuthorUsername = profile.DefaultUsername(p.AuthorName)
	}
	err = run(
		huh.NewInput().
			Title("VCS username").
			Description("Drives the package homepage and workflow badges.").
			Value(&p.AuthorUsername).
			Validate(profile.ValidateUsername),
	)
	if err != nil {
		return nil, err
	}

	if p.VendorName == "" {
		p.VendorName = profile.DefaultVendorName(p.AuthorUsername)
	}
	err = run(
		huh.NewInput().
			Title("Vendor name").
			Value(&p.VendorName).
			Validate(profile.ValidateVendorName),
		huh.NewInput().
			Title("Package slug").
			Placeholder("my-cool-tool").
			Value(&p.PackageSlug).
			Validate(profile.ValidateSlug),
		huh.NewInput().
			Title("Package description").
			Value(&p.Description).
			Validate(profile.ValidateDescription),
	)
	if err != nil {
		return nil, err
	}

	p.ClassName = profile.DefaultClassName(p.PackageSlug)
	err = run(
		huh.NewInput().
			Title("Main class name").
			Value(&p.ClassName).
			Validate(profile.ValidateClassName),
	)
	if err != nil {
		return nil, err
	}

	// The Laravel line narrows the PHP choices, so it is asked first.
	err = run(
		huh.NewSelect[string]().
			Title("Laravel version").
			Options(stringOptions(profile.LaravelVersions())...).
			Value(&p.LaravelVersion),
	)
	if err != nil {
		return nil, err
	}

	var features []profile.Feature
	err = run(
		huh.NewSelect[string]().
			Title("Minimum PHP version").
			Description("Releases supported by Laravel "+p.LaravelVersion+".").
			Options(stringOptions(profile.CompatiblePHPVersions(p.LaravelVersion))...).
			Value(&p.PHPVersion),
		huh.NewSelect[profile.TestingFramework]().
			Title("Testing framework").
			Options(
				huh.NewOption(profile.TestingPHPUnit.Label(), profile.TestingPHPUnit),
				huh.NewOption(profile.TestingPest.Label(), profile.TestingPest),
			).
			Value(&p.Testing),
		huh.NewMultiSelect[profile.Feature]().
			Title("Optional tooling").
			Options(featureOptions()...).
			Value(&features),
	)
	if err != nil {
		return nil, err
	}
	p.Features = profile.NewFeatureSet(features...)

	if p.Features.Has(profile.FeatureStaticAnalysis) {
		strict, err := Confirm("Enable strict static-analysis rules?", true)
		if err != nil {
			return nil, err
		}
		p.StrictAnalysis = strict
	}

	if err := p.Finalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// Confirm asks a yes/no question.
func Confirm(title string, def bool) (bool, error) {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&value),
	)).WithAccessible(accessible)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirming %q: %w", title, err)
	}
	return value, nil
}

func run(fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...)).WithAccessible(accessible)
	if err := form.Run(); err != nil {
		return fmt.Errorf("collecting profile: %w", err)
	}
	return nil
}

func stringOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v)
	}
	return opts
}

func featureOptions() []huh.Option[profile.Feature] {
	opts := make([]huh.Option[profile.Feature], len(profile.AllFeatures))
	for i, f := range profile.AllFeatures {
		opts[i] = huh.NewOption(f.Label(), f)
	}
	return opts
}
