// Package profile defines the package profile collected from the user
// before configuration runs: author identity, vendor and package naming,
// version targets, testing framework, and optional features. All other
// packages derive their inputs from a finalized Profile.
package profile

import (
	"errors"
	"fmt"

	"github.com/pkgsmith-labs/pkgsmith/internal/textcase"
)

// TestingFramework selects the test tooling the generated package uses.
type TestingFramework string

const (
	TestingPHPUnit TestingFramework = "phpunit"
	TestingPest    TestingFramework = "pest"
)

// ErrUnsupportedFramework is returned when a testing-framework value is
// dispatched that no branch handles.
var ErrUnsupportedFramework = errors.New("unsupported testing framework")

// ParseTestingFramework maps user input to a known framework.
func ParseTestingFramework(s string) (TestingFramework, error) {
	switch TestingFramework(s) {
	case TestingPHPUnit:
		return TestingPHPUnit, nil
	case TestingPest:
		return TestingPest, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFramework, s)
}

// Label returns the display name used in prompts and substituted for the
// testing-library token. Unknown values return an empty string; Finalize
// rejects them before any substitution runs.
func (f TestingFramework) Label() string {
	switch f {
	case TestingPHPUnit:
		return "PHPUnit"
	case TestingPest:
		return "Pest"
	}
	return ""
}

// Feature is an optional capability the generated package can ship with.
type Feature string

const (
	FeatureDependabot     Feature = "dependabot"
	FeatureChangelog      Feature = "changelog"
	FeatureLinter         Feature = "linter"
	FeatureStaticAnalysis Feature = "static-analysis"
	FeatureRefactor       Feature = "refactor"
)

// AllFeatures fixes the display and processing order of features.
var AllFeatures = []Feature{
	FeatureDependabot,
	FeatureChangelog,
	FeatureLinter,
	FeatureStaticAnalysis,
	FeatureRefactor,
}

// ErrUnknownFeature is returned for feature names outside AllFeatures.
var ErrUnknownFeature = errors.New("unknown feature")

// ParseFeature maps user input to a known feature.
func ParseFeature(s string) (Feature, error) {
	for _, f := range AllFeatures {
		if Feature(s) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

// Label returns the human-readable feature name shown in prompts and
// summaries.
func (f Feature) Label() string {
	switch f {
	case FeatureDependabot:
		return "Dependabot dependency updates"
	case FeatureChangelog:
		return "Changelog updater workflow"
	case FeatureLinter:
		return "Code style linter (Pint)"
	case FeatureStaticAnalysis:
		return "Static analysis (PHPStan)"
	case FeatureRefactor:
		return "Automated refactoring (Rector)"
	}
	return string(f)
}

// FeatureSet records which optional features are enabled.
type FeatureSet map[Feature]bool

// NewFeatureSet builds a set from the given features.
func NewFeatureSet(features ...Feature) FeatureSet {
	s := make(FeatureSet, len(features))
	for _, f := range features {
		s[f] = true
	}
	return s
}

// Has reports whether the feature is enabled.
func (s FeatureSet) Has(f Feature) bool { return s[f] }

// List returns the enabled features in canonical order.
func (s FeatureSet) List() []Feature {
	var out []Feature
	for _, f := range AllFeatures {
		if s[f] {
			out = append(out, f)
		}
	}
	return out
}

// Profile is the complete set of choices driving a configuration run.
type Profile struct {
	AuthorName     string
	AuthorEmail    string
	AuthorUsername string

	VendorName string
	VendorSlug string

	PackageSlug string
	Description string
	ClassName   string

	PHPVersion     string
	LaravelVersion string

	Testing  TestingFramework
	Features FeatureSet

	// StrictAnalysis selects the strict-rules variant of static analysis.
	// It is consulted only when FeatureStaticAnalysis is enabled.
	StrictAnalysis bool
}

// StrictAnalysisEnabled reports whether the strict static-analysis variant
// is in effect.
func (p *Profile) StrictAnalysisEnabled() bool {
	return p.Features.Has(FeatureStaticAnalysis) && p.StrictAnalysis
}

// FullPackageName is the composer package name, vendor-slug/package-slug.
func (p *Profile) FullPackageName() string {
	return p.VendorSlug + "/" + p.PackageSlug
}

// VendorNamespace is the PHP namespace segment derived from the vendor.
func (p *Profile) VendorNamespace() string {
	return textcase.Pascal(p.VendorSlug)
}

// PackageNamespace is the PascalCase identifier derived from the package
// slug, used for namespaces and the service-provider class name.
func (p *Profile) PackageNamespace() string {
	return textcase.Pascal(p.PackageSlug)
}

// ProviderClass is the generated service-provider class name.
func (p *Profile) ProviderClass() string {
	return p.PackageNamespace() + "ServiceProvider"
}

// HomepageURL points at the package repository derived from the VCS
// username and package slug.
func (p *Profile) HomepageURL() string {
	return "https://github.com/" + p.AuthorUsername + "/" + p.PackageSlug
}

// DefaultUsername derives the VCS username offered for an author name.
func DefaultUsername(authorName string) string {
	return textcase.Slugify(authorName)
}

// DefaultVendorName derives the vendor name offered for a VCS username.
func DefaultVendorName(username string) string {
	return textcase.Title(username)
}

// DefaultClassName derives the class name offered for a package slug.
func DefaultClassName(packageSlug string) string {
	return textcase.Pascal(packageSlug)
}
