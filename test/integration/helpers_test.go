//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // PKGSMITH_HOME, holds config and the version cache
	WorkDir string // parent directory packages get extracted into
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so every run is sandboxed away from the real user config.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
	}

	t.Setenv("PKGSMITH_HOME", env.HomeDir)
	t.Setenv("PKGSMITH_NO_UPDATE_CHECK", "1")

	return env
}

// fullProfile returns a finalized profile with every feature enabled.
func fullProfile(t *testing.T, testing profile.TestingFramework) *profile.Profile {
	t.Helper()

	p := &profile.Profile{
		AuthorName:     "Taylor Example",
		AuthorEmail:    "taylor@example.com",
		AuthorUsername: "taylorex",
		VendorName:     "Acme",
		PackageSlug:    "my-cool-tool",
		Description:    "A tool that does cool things",
		PHPVersion:     "8.3",
		LaravelVersion: "11",
		Testing:        testing,
		Features: profile.NewFeatureSet(
			profile.FeatureDependabot,
			profile.FeatureChangelog,
			profile.FeatureLinter,
			profile.FeatureStaticAnalysis,
			profile.FeatureRefactor,
		),
		StrictAnalysis: true,
	}
	if err := p.Finalize(); err != nil {
		t.Fatalf("finalizing profile: %v", err)
	}
	return p
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file exists and contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s unexpectedly contains %q", path, substr)
	}
}

// listTree returns every file under root, relative and slash-separated.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}
