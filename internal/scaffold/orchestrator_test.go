package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pkgsmith-labs/pkgsmith/internal/installer"
	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

func TestRunPHPUnitAllFeaturesStrict(t *testing.T) {
	root := extractSkeleton(t)
	p := testProfile(t, "phpunit", profile.AllFeatures...)
	p.StrictAnalysis = true
	fake := &installer.Fake{}
	hooks := Hooks{
		ConfirmInstall:      func() bool { return true },
		ConfirmRemoveMarker: func() bool { return true },
	}

	res, err := NewOrchestrator(root, p, fake, hooks).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	// Generated sources carry the derived namespace.
	for _, rel := range []string{
		"src/MyCoolTool.php",
		"src/MyCoolToolServiceProvider.php",
		"src/Facades/MyCoolTool.php",
	} {
		assertExists(t, root, rel)
	}
	provider := readTree(t, root, "src/MyCoolToolServiceProvider.php")
	assertContains(t, provider, `namespace Acme\MyCoolTool;`)
	assertContains(t, provider, "class MyCoolToolServiceProvider extends ServiceProvider")
	assertContains(t, provider, "config/my-cool-tool.php")
	facade := readTree(t, root, "src/Facades/MyCoolTool.php")
	assertContains(t, facade, `return \Acme\MyCoolTool\MyCoolTool::class;`)

	// Every enabled artifact lands at its destination.
	assertExists(t, root, "config/my-cool-tool.php")
	assertAbsent(t, root, "config/skeleton.php.stub")
	for _, rel := range []string{
		"CHANGELOG.md",
		"README.md",
		".github/ISSUE_TEMPLATE/bug_report.yml",
		".github/ISSUE_TEMPLATE/config.yml",
		".github/dependabot.yml",
		".github/workflows/update-changelog.yml",
		".github/workflows/fix-code-style.yml",
		"pint.json",
		".github/workflows/phpstan.yml",
		".github/workflows/rector.yml",
		"rector.php",
	} {
		assertExists(t, root, rel)
	}
	assertAbsent(t, root, "README.md.stub")

	// Framework branch: phpunit workflow and example, pest stubs inert.
	assertContains(t, readTree(t, root, ".github/workflows/run-tests.yml"), "vendor/bin/phpunit")
	assertContains(t, readTree(t, root, "tests/ExampleTest.php"), "true_is_true")
	assertExists(t, root, ".github/workflows/run-tests-pest.yml.stub")
	assertExists(t, root, "tests/ExampleTest.pest.php.stub")
	assertAbsent(t, root, "tests/Pest.php")

	// The test bootstrap references the generated provider.
	assertContains(t, readTree(t, root, "tests/TestCase.php"), `use Acme\MyCoolTool\MyCoolToolServiceProvider;`)

	// Strict analysis puts the include block on the first line.
	phpstan := readTree(t, root, "phpstan.neon.dist")
	if !strings.HasPrefix(phpstan, strictIncludes) {
		t.Errorf("phpstan config should start with the strict include block:\n%s", phpstan)
	}

	// License holder and year are filled in place.
	license := readTree(t, root, "LICENSE.md")
	assertContains(t, license, "Taylor Example")
	assertContains(t, license, strconv.Itoa(time.Now().Year()))

	// Empty directories keep a .gitkeep.
	for _, dir := range keepDirs {
		assertExists(t, root, dir+"/.gitkeep")
	}

	// Manifest merges onto the shipped seed.
	if !res.ManifestMerged {
		t.Error("run over the shipped seed manifest should merge")
	}
	doc := readManifest(t, root)
	if doc["name"] != "acme/my-cool-tool" {
		t.Errorf("name = %v, want acme/my-cool-tool", doc["name"])
	}
	requireDev, _ := doc["require-dev"].(map[string]any)
	for _, pkg := range []string{
		"phpunit/phpunit",
		"orchestra/testbench",
		"laravel/pint",
		"phpstan/phpstan",
		"larastan/larastan",
		"phpstan/phpstan-strict-rules",
		"rector/rector",
	} {
		if _, ok := requireDev[pkg]; !ok {
			t.Errorf("require-dev missing %s: %v", pkg, requireDev)
		}
	}
	require, _ := doc["require"].(map[string]any)
	if require["php"] != "^8.3" {
		t.Errorf("require.php = %v, want ^8.3", require["php"])
	}

	// Installer ran in the configured tree.
	if res.Install == nil || !res.Install.Ran {
		t.Errorf("Install = %+v, want a completed run", res.Install)
	}
	if len(fake.Dirs) != 1 || fake.Dirs[0] != root {
		t.Errorf("installer dirs = %v, want [%s]", fake.Dirs, root)
	}

	// Marker retired; the tree refuses a second run.
	if !res.MarkerRemoved {
		t.Error("marker should be removed")
	}
	if IsSkeleton(root) {
		t.Error("configured tree should no longer read as a skeleton")
	}
	if _, err := NewOrchestrator(root, p, fake, hooks).Run(context.Background()); !errors.Is(err, ErrNotSkeleton) {
		t.Errorf("second Run() error = %v, want ErrNotSkeleton", err)
	}

	// Every registry entry is accounted for: activated or skipped.
	assertArtifactsAccounted(t, res)
}

func TestRunPestNoFeatures(t *testing.T) {
	root := extractSkeleton(t)
	p := testProfile(t, "pest")
	fake := &installer.Fake{}

	res, err := NewOrchestrator(root, p, fake, Hooks{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	// Pest branch: its workflow and example take the shared destinations.
	assertContains(t, readTree(t, root, ".github/workflows/run-tests.yml"), "vendor/bin/pest")
	assertContains(t, readTree(t, root, "tests/ExampleTest.php"), "toBeTrue")
	assertExists(t, root, "tests/ArchTest.php")
	assertContains(t, readTree(t, root, "tests/Pest.php"), `uses(Acme\MyCoolTool\Tests\TestCase::class)`)
	assertExists(t, root, ".github/workflows/run-tests.yml.stub")
	assertExists(t, root, "tests/ExampleTest.php.stub")
	assertAbsent(t, root, ".github/workflows/run-tests-pest.yml.stub")
	assertAbsent(t, root, "tests/ExampleTest.pest.php.stub")

	// Disabled features leave their stubs inert.
	for _, rel := range []string{
		".github/dependabot.yml.stub",
		".github/workflows/update-changelog.yml.stub",
		".github/workflows/fix-code-style.yml.stub",
		"pint.json.stub",
		".github/workflows/phpstan.yml.stub",
		"phpstan.neon.dist.stub",
		".github/workflows/rector.yml.stub",
		"rector.php.stub",
	} {
		assertExists(t, root, rel)
	}
	assertAbsent(t, root, ".github/dependabot.yml")
	assertAbsent(t, root, "pint.json")
	assertAbsent(t, root, "phpstan.neon.dist")
	assertAbsent(t, root, "rector.php")

	// Skips are recorded with their gate.
	assertSkipped(t, res, "dependabot (dependabot disabled)")
	assertSkipped(t, res, "workflow-lint (linter disabled)")
	assertSkipped(t, res, "workflow-tests-phpunit (phpunit only)")
	assertSkipped(t, res, "readme (handoff declined)")
	assertArtifactsAccounted(t, res)

	// The declined handoff leaves the README stub inert.
	assertExists(t, root, "README.md.stub")
	assertAbsent(t, root, "README.md")

	// Manifest carries the pest fragment and nothing from other features.
	doc := readManifest(t, root)
	requireDev, _ := doc["require-dev"].(map[string]any)
	for _, pkg := range []string{"pestphp/pest", "pestphp/pest-plugin-arch", "pestphp/pest-plugin-laravel", "orchestra/testbench"} {
		if _, ok := requireDev[pkg]; !ok {
			t.Errorf("require-dev missing %s: %v", pkg, requireDev)
		}
	}
	for _, pkg := range []string{"laravel/pint", "phpstan/phpstan", "rector/rector"} {
		if _, ok := requireDev[pkg]; ok {
			t.Errorf("require-dev should not carry %s", pkg)
		}
	}
	scripts, _ := doc["scripts"].(map[string]any)
	if scripts["test"] != "vendor/bin/pest" {
		t.Errorf("scripts.test = %v, want vendor/bin/pest", scripts["test"])
	}
	config, _ := doc["config"].(map[string]any)
	allow, _ := config["allow-plugins"].(map[string]any)
	if allow["pestphp/pest-plugin"] != true {
		t.Errorf("allow-plugins = %v, want pestphp/pest-plugin enabled", allow)
	}

	// Declined hooks: no install, marker stays.
	if res.Install != nil {
		t.Errorf("Install = %+v, want nil when the handoff is declined", res.Install)
	}
	if len(fake.Dirs) != 0 {
		t.Errorf("installer should not run, got dirs %v", fake.Dirs)
	}
	if res.MarkerRemoved || !IsSkeleton(root) {
		t.Error("marker should survive a declined removal")
	}
}

func TestRunMergesExistingManifest(t *testing.T) {
	root := extractSkeleton(t)
	seed := `{
    "keywords": ["x"],
    "require": {"php": "^7.4"},
    "support": {"issues": "https://example.com/issues"}
}
`
	if err := os.WriteFile(filepath.Join(root, "composer.json"), []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewOrchestrator(root, testProfile(t, "phpunit"), &installer.Fake{}, Hooks{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !res.ManifestMerged {
		t.Error("pre-existing manifest should be merged")
	}

	doc := readManifest(t, root)
	keywords, _ := doc["keywords"].([]any)
	want := []any{"x", "laravel", "my-cool-tool"}
	if len(keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", keywords, want)
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %v, want %v", i, keywords[i], want[i])
		}
	}
	require, _ := doc["require"].(map[string]any)
	if require["php"] != "^8.3" {
		t.Errorf("require.php = %v, want the built constraint ^8.3", require["php"])
	}
	support, _ := doc["support"].(map[string]any)
	if support["issues"] != "https://example.com/issues" {
		t.Errorf("support = %v, want the pre-existing entry kept", support)
	}
}

func TestRunWritesFreshManifest(t *testing.T) {
	root := extractSkeleton(t)
	if err := os.Remove(filepath.Join(root, "composer.json")); err != nil {
		t.Fatal(err)
	}

	res, err := NewOrchestrator(root, testProfile(t, "phpunit"), &installer.Fake{}, Hooks{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.ManifestMerged {
		t.Error("absent manifest should be written fresh, not merged")
	}

	raw := readTree(t, root, "composer.json")
	if !strings.HasPrefix(raw, "{\n    \"name\": \"acme/my-cool-tool\",") {
		t.Errorf("fresh manifest should lead with the package name:\n%s", raw)
	}
	if !strings.HasSuffix(raw, "}\n") {
		t.Error("manifest should end with a trailing newline")
	}
}

func TestRunUnreadableManifestDemotesToWarning(t *testing.T) {
	root := extractSkeleton(t)
	if err := os.WriteFile(filepath.Join(root, "composer.json"), []byte("{ not json"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewOrchestrator(root, testProfile(t, "phpunit"), &installer.Fake{}, Hooks{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var warned bool
	for _, w := range res.Warnings {
		if strings.HasPrefix(w, "manifest:") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("warnings = %v, want a manifest warning", res.Warnings)
	}

	// The broken file is preserved and the built manifest lands beside it.
	if got := readTree(t, root, "composer.json"); got != "{ not json" {
		t.Errorf("broken manifest was rewritten: %q", got)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(readTree(t, root, "composer.json.new")), &doc); err != nil {
		t.Fatalf("composer.json.new should hold the built manifest: %v", err)
	}
	if doc["name"] != "acme/my-cool-tool" {
		t.Errorf("fallback manifest name = %v, want acme/my-cool-tool", doc["name"])
	}
}

func TestRunRefusesTreeWithoutMarker(t *testing.T) {
	root := extractSkeleton(t)
	if err := RemoveMarker(root); err != nil {
		t.Fatal(err)
	}

	_, err := NewOrchestrator(root, testProfile(t, "phpunit"), &installer.Fake{}, Hooks{}).Run(context.Background())
	if !errors.Is(err, ErrNotSkeleton) {
		t.Errorf("Run() error = %v, want ErrNotSkeleton", err)
	}
}

func TestRunReportsInstallerFailure(t *testing.T) {
	root := extractSkeleton(t)
	fake := &installer.Fake{Result: &installer.Result{Ran: true, ExitCode: 2, Err: errors.New("composer install: exit status 2")}}
	hooks := Hooks{ConfirmInstall: func() bool { return true }}

	res, err := NewOrchestrator(root, testProfile(t, "pest"), fake, hooks).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Install == nil || res.Install.ExitCode != 2 || res.Install.Err == nil {
		t.Errorf("Install = %+v, want the failure surfaced", res.Install)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func testProfile(t *testing.T, fw profile.TestingFramework, features ...profile.Feature) *profile.Profile {
	t.Helper()
	p := &profile.Profile{
		AuthorName:     "Taylor Example",
		AuthorEmail:    "taylor@example.com",
		AuthorUsername: "taylorex",
		VendorName:     "Acme",
		PackageSlug:    "my-cool-tool",
		Description:    "A cool tool for Laravel apps.",
		PHPVersion:     "8.3",
		LaravelVersion: "11",
		Testing:        fw,
		Features:       profile.NewFeatureSet(features...),
	}
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	return p
}

func extractSkeleton(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "my-cool-tool")
	if _, err := Extract(root); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	return root
}

func readTree(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func readManifest(t *testing.T, root string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(readTree(t, root, "composer.json")), &doc); err != nil {
		t.Fatalf("parsing composer.json: %v", err)
	}
	return doc
}

func assertExists(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Errorf("%s should exist: %v", rel, err)
	}
}

func assertAbsent(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
		t.Errorf("%s should not exist", rel)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}

func assertSkipped(t *testing.T, res *Result, entry string) {
	t.Helper()
	for _, s := range res.Skipped {
		if s == entry {
			return
		}
	}
	t.Errorf("skipped = %v, want %q recorded", res.Skipped, entry)
}

// assertArtifactsAccounted checks that every registry entry shows up in the
// result, either as an activated destination or as a recorded skip. The
// license is substituted in place and is not a registry artifact.
func assertArtifactsAccounted(t *testing.T, res *Result) {
	t.Helper()
	accounted := len(res.Activated) - 1 + len(res.Skipped)
	if accounted != len(artifacts) {
		t.Errorf("accounted for %d of %d artifacts\nactivated: %v\nskipped: %v",
			accounted, len(artifacts), res.Activated, res.Skipped)
	}
}
