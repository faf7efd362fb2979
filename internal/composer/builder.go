package composer

import (
	"fmt"

	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

// testbenchFor maps a Laravel line to the matching orchestra/testbench
// constraint.
var testbenchFor = map[string]string{
	"10": "^8.14",
	"11": "^9.0",
	"12": "^10.0",
}

// Builder accumulates the composer manifest for a configuration run. It is
// created once, threaded through the orchestration steps that contribute
// dependencies and scripts, and rendered at the end.
type Builder struct {
	m Manifest
}

// NewBuilder seeds a builder with the package identity derived from the
// profile: name, description, keywords, homepage, license, authors, the
// base requirements, PSR-4 autoloading, and the Laravel provider/alias
// registration.
func NewBuilder(p *profile.Profile) *Builder {
	ns := p.VendorNamespace() + `\` + p.PackageNamespace() + `\`
	return &Builder{m: Manifest{
		Name:        p.FullPackageName(),
		Description: p.Description,
		Keywords:    []string{"laravel", p.PackageSlug},
		Homepage:    p.HomepageURL(),
		License:     "MIT",
		Authors: []Author{
			{Name: p.AuthorName, Email: p.AuthorEmail, Role: "Developer"},
		},
		Require: map[string]string{
			"php":                  profile.PHPConstraint(p.PHPVersion),
			"illuminate/contracts": profile.LaravelConstraint(p.LaravelVersion),
		},
		Autoload: &Autoload{PSR4: map[string]string{
			ns: "src/",
		}},
		AutoloadDev: &Autoload{PSR4: map[string]string{
			ns + `Tests\`: "tests/",
		}},
		Config: map[string]any{
			"sort-packages": true,
		},
		Extra: map[string]any{
			"laravel": map[string]any{
				"providers": []any{ns + p.ProviderClass()},
				"aliases": map[string]any{
					p.ClassName: ns + `Facades\` + p.ClassName,
				},
			},
		},
		MinimumStability: "dev",
		PreferStable:     true,
	}}
}

// RequireDev adds a development dependency.
func (b *Builder) RequireDev(pkg, constraint string) {
	if b.m.RequireDev == nil {
		b.m.RequireDev = map[string]string{}
	}
	b.m.RequireDev[pkg] = constraint
}

// Script sets a composer script.
func (b *Builder) Script(name, command string) {
	if b.m.Scripts == nil {
		b.m.Scripts = map[string]any{}
	}
	b.m.Scripts[name] = command
}

// AllowPlugin marks a composer plugin as allowed.
func (b *Builder) AllowPlugin(name string) {
	allow, _ := b.m.Config["allow-plugins"].(map[string]any)
	if allow == nil {
		allow = map[string]any{}
		b.m.Config["allow-plugins"] = allow
	}
	allow[name] = true
}

// ApplyTesting contributes the testing-framework fragment: dev
// dependencies, the test script, and plugin allowances.
func (b *Builder) ApplyTesting(p *profile.Profile) error {
	testbench, ok := testbenchFor[p.LaravelVersion]
	if !ok {
		testbench = "^9.0"
	}
	switch p.Testing {
	case profile.TestingPHPUnit:
		b.RequireDev("phpunit/phpunit", "^11.0")
		b.RequireDev("orchestra/testbench", testbench)
		b.Script("test", "vendor/bin/phpunit")
	case profile.TestingPest:
		b.RequireDev("pestphp/pest", "^3.0")
		b.RequireDev("pestphp/pest-plugin-arch", "^3.0")
		b.RequireDev("pestphp/pest-plugin-laravel", "^3.0")
		b.RequireDev("orchestra/testbench", testbench)
		b.Script("test", "vendor/bin/pest")
		b.AllowPlugin("pestphp/pest-plugin")
	default:
		return fmt.Errorf("%w: %q", profile.ErrUnsupportedFramework, p.Testing)
	}
	return nil
}

// ApplyFeature contributes a feature fragment. Workflow-only features add
// nothing to the manifest.
func (b *Builder) ApplyFeature(p *profile.Profile, f profile.Feature) error {
	switch f {
	case profile.FeatureDependabot, profile.FeatureChangelog:
		// Workflow-only features.
	case profile.FeatureLinter:
		b.RequireDev("laravel/pint", "^1.14")
		b.Script("format", "vendor/bin/pint")
	case profile.FeatureStaticAnalysis:
		b.RequireDev("phpstan/phpstan", "^2.0")
		b.RequireDev("larastan/larastan", "^3.0")
		b.RequireDev("phpstan/extension-installer", "^1.3")
		b.AllowPlugin("phpstan/extension-installer")
		b.Script("analyse", "vendor/bin/phpstan analyse")
		if p.StrictAnalysisEnabled() {
			b.RequireDev("phpstan/phpstan-strict-rules", "^2.0")
		}
	case profile.FeatureRefactor:
		b.RequireDev("rector/rector", "^2.0")
		b.Script("refactor", "vendor/bin/rector")
	default:
		return fmt.Errorf("%w: %q", profile.ErrUnknownFeature, f)
	}
	return nil
}

// Manifest returns the accumulated manifest.
func (b *Builder) Manifest() *Manifest {
	return &b.m
}
