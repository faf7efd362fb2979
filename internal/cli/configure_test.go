package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkgsmith-labs/pkgsmith/internal/installer"
	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
	"github.com/pkgsmith-labs/pkgsmith/internal/scaffold"
)

// resetConfigureFlags restores every configure flag to its registered
// default so tests do not leak state into each other.
func resetConfigureFlags(t *testing.T) {
	t.Helper()
	confDir = "."
	confAuthorName = ""
	confAuthorEmail = ""
	confAuthorUsername = ""
	confVendor = ""
	confPackage = ""
	confDescription = ""
	confClass = ""
	confPHP = ""
	confLaravel = ""
	confTesting = "phpunit"
	confFeatures = nil
	confStrict = false
	confInstall = false
	confRemoveMarker = true
	confNoInteraction = false
}

func TestProfileFromFlagsDerivesDefaults(t *testing.T) {
	resetConfigureFlags(t)
	confAuthorName = "Taylor Example"
	confAuthorEmail = "taylor@example.com"
	confPackage = "my-cool-tool"
	confDescription = "A tool that does cool things"
	confTesting = "pest"
	confFeatures = []string{"linter", " static-analysis"}
	confStrict = true

	p, err := profileFromFlags()
	if err != nil {
		t.Fatalf("profileFromFlags() error: %v", err)
	}

	if p.AuthorUsername != "taylor-example" {
		t.Errorf("AuthorUsername = %q, want %q", p.AuthorUsername, "taylor-example")
	}
	if p.VendorName != "Taylor Example" {
		t.Errorf("VendorName = %q, want %q", p.VendorName, "Taylor Example")
	}
	if p.VendorSlug != "taylor-example" {
		t.Errorf("VendorSlug = %q, want %q", p.VendorSlug, "taylor-example")
	}
	if p.LaravelVersion != "12" {
		t.Errorf("LaravelVersion = %q, want newest line %q", p.LaravelVersion, "12")
	}
	if p.PHPVersion != "8.4" {
		t.Errorf("PHPVersion = %q, want newest compatible %q", p.PHPVersion, "8.4")
	}
	if p.ClassName != "MyCoolTool" {
		t.Errorf("ClassName = %q, want %q", p.ClassName, "MyCoolTool")
	}
	if p.Testing != profile.TestingPest {
		t.Errorf("Testing = %q, want pest", p.Testing)
	}
	if !p.Features.Has(profile.FeatureLinter) || !p.Features.Has(profile.FeatureStaticAnalysis) {
		t.Errorf("Features = %v, want linter and static-analysis", p.Features.List())
	}
	if !p.StrictAnalysisEnabled() {
		t.Error("StrictAnalysisEnabled() = false, want true")
	}
}

func TestProfileFromFlagsRequiresCoreFlags(t *testing.T) {
	resetConfigureFlags(t)

	_, err := profileFromFlags()
	if err == nil {
		t.Fatal("profileFromFlags() succeeded with no flags set")
	}
	for _, flag := range []string{"--author-name", "--author-email", "--package", "--description"} {
		if !strings.Contains(err.Error(), flag) {
			t.Errorf("error %q does not name %s", err, flag)
		}
	}
}

func TestProfileFromFlagsRejectsBadEnums(t *testing.T) {
	resetConfigureFlags(t)
	confAuthorName = "Taylor Example"
	confAuthorEmail = "taylor@example.com"
	confPackage = "my-cool-tool"
	confDescription = "A tool"

	confTesting = "jest"
	if _, err := profileFromFlags(); err == nil || !strings.Contains(err.Error(), "--testing") {
		t.Errorf("testing=jest error = %v, want --testing named", err)
	}

	confTesting = "phpunit"
	confFeatures = []string{"coverage"}
	_, err := profileFromFlags()
	if err == nil || !strings.Contains(err.Error(), "--features") {
		t.Errorf("features=coverage error = %v, want --features named", err)
	}
	if !errors.Is(err, profile.ErrUnknownFeature) {
		t.Errorf("error = %v, want ErrUnknownFeature", err)
	}
}

func TestProfileFromFlagsRejectsIncompatibleVersions(t *testing.T) {
	resetConfigureFlags(t)
	confAuthorName = "Taylor Example"
	confAuthorEmail = "taylor@example.com"
	confPackage = "my-cool-tool"
	confDescription = "A tool"
	confPHP = "8.1"
	confLaravel = "11"

	if _, err := profileFromFlags(); err == nil {
		t.Error("profileFromFlags() accepted php 8.1 with laravel 11")
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"my-cool-tool", "tool", "a1", "9lives"}
	for _, name := range valid {
		if err := validateName(name); err != nil {
			t.Errorf("validateName(%q) = %v, want nil", name, err)
		}
	}
	invalid := []string{"", "My-Tool", "-tool", "my_tool", "tool!"}
	for _, name := range invalid {
		if err := validateName(name); err == nil {
			t.Errorf("validateName(%q) = nil, want error", name)
		}
	}
}

func TestSuggestSlug(t *testing.T) {
	base := t.TempDir()
	if got := suggestSlug(filepath.Join(base, "My-Package")); got != "my-package" {
		t.Errorf("suggestSlug(My-Package) = %q, want %q", got, "my-package")
	}
	if got := suggestSlug(filepath.Join(base, "###")); got != "" {
		t.Errorf("suggestSlug(###) = %q, want empty", got)
	}
}

func TestConfirmHookHonorsNoInteraction(t *testing.T) {
	resetConfigureFlags(t)
	confNoInteraction = true

	if !confirmHook("install", true, "q", false)() {
		t.Error("hook = false, want the flag value true")
	}
	if confirmHook("install", false, "q", true)() {
		t.Error("hook = true, want the flag value false")
	}
}

func TestSummarizeRun(t *testing.T) {
	p := &profile.Profile{VendorSlug: "acme", PackageSlug: "my-cool-tool"}
	res := &scaffold.Result{
		Root:           "/tmp/pkg",
		Activated:      []string{"CHANGELOG.md"},
		Skipped:        []string{"pint.json (feature linter)"},
		ManifestPath:   "/tmp/pkg/composer.json",
		ManifestMerged: true,
		MarkerRemoved:  true,
	}

	s := summarizeRun(p, res)
	if s.Package != "acme/my-cool-tool" {
		t.Errorf("Package = %q, want %q", s.Package, "acme/my-cool-tool")
	}
	if s.InstallRan || s.InstallErr != nil {
		t.Errorf("install summary = (%v, %v), want zero values for a declined handoff", s.InstallRan, s.InstallErr)
	}

	res.Install = &installer.Result{Ran: true, ExitCode: 2, Err: errors.New("composer install: exit status 2")}
	s = summarizeRun(p, res)
	if !s.InstallRan || s.InstallErr == nil {
		t.Errorf("install summary = (%v, %v), want ran with error", s.InstallRan, s.InstallErr)
	}
}
