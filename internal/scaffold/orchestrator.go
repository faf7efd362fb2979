package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgsmith-labs/pkgsmith/internal/composer"
	"github.com/pkgsmith-labs/pkgsmith/internal/installer"
	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

// projectDirs is the directory skeleton every configured package gets.
var projectDirs = []string{
	"config",
	"database/factories",
	"database/migrations",
	"resources/views",
	"routes",
	"src/Facades",
	"tests",
}

// keepDirs stay empty after configuration and receive a .gitkeep.
var keepDirs = []string{
	"database/factories",
	"database/migrations",
	"resources/views",
	"routes",
}

// strictIncludes goes in front of the generated phpstan config when the
// strict variant is selected.
const strictIncludes = "includes:\n    - vendor/phpstan/phpstan-strict-rules/rules.neon\n\n"

// Hooks supplies the interactive decisions a run asks for after the tree
// is configured. Nil hooks decline.
type Hooks struct {
	ConfirmInstall      func() bool
	ConfirmRemoveMarker func() bool
}

// Result holds the outcome of a configuration run. Every artifact decision
// lands in Activated, Written, or Skipped; nothing is skipped silently.
type Result struct {
	Root           string
	Activated      []string // activated artifact destinations
	Written        []string // generated source files
	Skipped        []string // artifacts whose gate was off, with the gate
	ManifestPath   string
	ManifestMerged bool
	Install        *installer.Result // nil when the handoff was declined
	MarkerRemoved  bool
	Warnings       []string
}

// Orchestrator drives the fixed configuration sequence over a skeleton
// tree: directories, license, conditional artifacts, source stubs, the
// manifest, the installer handoff, and marker removal.
type Orchestrator struct {
	root      string
	profile   *profile.Profile
	builder   *composer.Builder
	activator *Activator
	installer installer.Installer
	hooks     Hooks
}

// NewOrchestrator prepares a run over the skeleton at root. The profile
// must be finalized.
func NewOrchestrator(root string, p *profile.Profile, inst installer.Installer, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		root:      root,
		profile:   p,
		builder:   composer.NewBuilder(p),
		activator: NewActivator(root, p),
		installer: inst,
		hooks:     hooks,
	}
}

// Run executes the configuration sequence. Errors before the manifest step
// abort the run; later failures are reported in the result instead so a
// nearly-complete tree is not thrown away.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	res := &Result{Root: o.root}

	// The marker doubles as the re-run guard: once a run removes it, the
	// tree can no longer be configured.
	if _, err := ReadMarker(o.root); err != nil {
		return nil, err
	}

	// Step 1: directory skeleton.
	for _, dir := range projectDirs {
		if err := os.MkdirAll(filepath.Join(o.root, filepath.FromSlash(dir)), 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	for _, dir := range keepDirs {
		keep := filepath.Join(o.root, filepath.FromSlash(dir), ".gitkeep")
		if err := os.WriteFile(keep, nil, 0644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", keep, err)
		}
	}

	// Step 2: package config stub.
	if err := o.activate(res, "config-stub"); err != nil {
		return nil, err
	}

	// Step 3: license holder and year.
	if err := o.activator.SubstituteFile("LICENSE.md"); err != nil {
		return nil, err
	}
	res.Activated = append(res.Activated, "LICENSE.md")

	// Step 4: CI tree.
	if err := os.MkdirAll(filepath.Join(o.root, ".github", "workflows"), 0755); err != nil {
		return nil, fmt.Errorf("creating workflows directory: %w", err)
	}

	// Step 5: unconditional artifacts.
	for _, key := range []string{"issue-bug-report", "issue-config", "changelog"} {
		if err := o.activate(res, key); err != nil {
			return nil, err
		}
	}

	// Step 6: dependency-update and changelog workflows.
	for _, key := range []string{"dependabot", "workflow-changelog"} {
		if err := o.activate(res, key); err != nil {
			return nil, err
		}
	}

	// Steps 7–8: the manifest builder is already seeded with the package
	// identity, and the PascalCase identifier drives the source data.
	src := newSourceData(o.profile)

	// Step 9: facade and service-provider sources.
	sources := []struct {
		rel  string
		tmpl string
	}{
		{"src/" + o.profile.ClassName + ".php", classTemplate},
		{"src/" + o.profile.ProviderClass() + ".php", providerTemplate},
		{"src/Facades/" + o.profile.ClassName + ".php", facadeTemplate},
	}
	for _, s := range sources {
		if err := writeSource(o.root, s.rel, s.tmpl, src); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, s.rel)
	}

	// Step 10: test bootstrap, branching on the testing framework.
	if err := o.activate(res, "testcase"); err != nil {
		return nil, err
	}
	switch o.profile.Testing {
	case profile.TestingPHPUnit:
		for _, key := range []string{"workflow-tests-phpunit", "example-test-phpunit"} {
			if err := o.activate(res, key); err != nil {
				return nil, err
			}
		}
	case profile.TestingPest:
		for _, key := range []string{"workflow-tests-pest", "example-test-pest", "arch-test"} {
			if err := o.activate(res, key); err != nil {
				return nil, err
			}
		}
		if err := writeSource(o.root, "tests/Pest.php", pestBootstrapTemplate, src); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, "tests/Pest.php")
	default:
		return nil, fmt.Errorf("%w: %q", profile.ErrUnsupportedFramework, o.profile.Testing)
	}
	if err := o.builder.ApplyTesting(o.profile); err != nil {
		return nil, err
	}
	// The skipped counterpart workflow stays inert; record it.
	o.recordFrameworkSkips(res)

	// Step 11: linter, static analysis, refactoring.
	for _, key := range []string{"workflow-lint", "pint-config", "workflow-phpstan", "phpstan-config", "workflow-rector", "rector-config"} {
		if err := o.activate(res, key); err != nil {
			return nil, err
		}
	}
	if o.profile.StrictAnalysisEnabled() {
		if err := o.activator.Prepend("phpstan.neon.dist", strictIncludes); err != nil {
			return nil, err
		}
	}
	for _, f := range o.profile.Features.List() {
		if err := o.builder.ApplyFeature(o.profile, f); err != nil {
			return nil, err
		}
	}

	// Step 12: finalize and persist the manifest. Problems here demote to
	// warnings; the configured tree is still worth keeping.
	res.ManifestPath = filepath.Join(o.root, "composer.json")
	merged, err := composer.WriteFile(res.ManifestPath, o.builder.Manifest())
	res.ManifestMerged = merged
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("manifest: %v", err))
	} else if validation, err := composer.ValidateFile(res.ManifestPath); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not validate manifest: %v", err))
	} else if !validation.Valid {
		for _, issue := range validation.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			res.Warnings = append(res.Warnings, "manifest: "+msg)
		}
	}

	// Step 13: installer handoff. The README takes its final form only when
	// the handoff is confirmed; a declined tree keeps the stub.
	if o.hooks.ConfirmInstall != nil && o.hooks.ConfirmInstall() {
		res.Install = o.installer.Install(ctx, o.root)
		if err := o.activate(res, "readme"); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("readme: %v", err))
		}
	} else {
		res.Skipped = append(res.Skipped, "readme (handoff declined)")
	}

	// Step 14: offer to retire the skeleton marker.
	if o.hooks.ConfirmRemoveMarker != nil && o.hooks.ConfirmRemoveMarker() {
		if err := RemoveMarker(o.root); err != nil {
			res.Warnings = append(res.Warnings, err.Error())
		} else {
			res.MarkerRemoved = true
		}
	}

	return res, nil
}

// activate runs one artifact through the activator and records the
// outcome.
func (o *Orchestrator) activate(res *Result, key string) error {
	dest, ok, err := o.activator.Activate(key)
	if err != nil {
		return err
	}
	if ok {
		res.Activated = append(res.Activated, dest)
		return nil
	}
	art, _ := LookupArtifact(key)
	res.Skipped = append(res.Skipped, key+" ("+gateLabel(art)+")")
	return nil
}

// recordFrameworkSkips notes the other framework's artifacts as skipped so
// the summary accounts for every registry entry.
func (o *Orchestrator) recordFrameworkSkips(res *Result) {
	for _, art := range artifacts {
		if art.Framework != "" && art.Framework != o.profile.Testing {
			res.Skipped = append(res.Skipped, art.Key+" ("+gateLabel(art)+")")
		}
	}
}

func gateLabel(a Artifact) string {
	switch {
	case a.Feature != "":
		return string(a.Feature) + " disabled"
	case a.Framework != "":
		return string(a.Framework) + " only"
	default:
		return "skipped"
	}
}
