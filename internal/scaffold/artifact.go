package scaffold

import "github.com/pkgsmith-labs/pkgsmith/internal/profile"

// Artifact describes one template in the skeleton: where its inert stub
// lives, where the activated file goes, and the choice gating it. A zero
// Feature and Framework means the artifact is unconditional. Dest may
// contain substitution tokens; they are resolved with the run's profile.
type Artifact struct {
	Key       string
	Source    string
	Dest      string
	Feature   profile.Feature
	Framework profile.TestingFramework
}

// artifacts is the fixed registry of skeleton templates. The orchestrator
// decides activation order; this table only knows placement and gating.
var artifacts = []Artifact{
	{Key: "changelog", Source: "CHANGELOG.md.stub", Dest: "CHANGELOG.md"},
	{Key: "issue-bug-report", Source: ".github/ISSUE_TEMPLATE/bug_report.yml.stub", Dest: ".github/ISSUE_TEMPLATE/bug_report.yml"},
	{Key: "issue-config", Source: ".github/ISSUE_TEMPLATE/config.yml.stub", Dest: ".github/ISSUE_TEMPLATE/config.yml"},
	{Key: "config-stub", Source: "config/skeleton.php.stub", Dest: "config/skeleton.php"},
	{Key: "testcase", Source: "tests/TestCase.php.stub", Dest: "tests/TestCase.php"},
	{Key: "readme", Source: "README.md.stub", Dest: "README.md"},

	{Key: "dependabot", Source: ".github/dependabot.yml.stub", Dest: ".github/dependabot.yml", Feature: profile.FeatureDependabot},
	{Key: "workflow-changelog", Source: ".github/workflows/update-changelog.yml.stub", Dest: ".github/workflows/update-changelog.yml", Feature: profile.FeatureChangelog},

	{Key: "workflow-tests-phpunit", Source: ".github/workflows/run-tests.yml.stub", Dest: ".github/workflows/run-tests.yml", Framework: profile.TestingPHPUnit},
	{Key: "workflow-tests-pest", Source: ".github/workflows/run-tests-pest.yml.stub", Dest: ".github/workflows/run-tests.yml", Framework: profile.TestingPest},
	{Key: "example-test-phpunit", Source: "tests/ExampleTest.php.stub", Dest: "tests/ExampleTest.php", Framework: profile.TestingPHPUnit},
	{Key: "example-test-pest", Source: "tests/ExampleTest.pest.php.stub", Dest: "tests/ExampleTest.php", Framework: profile.TestingPest},
	{Key: "arch-test", Source: "tests/ArchTest.php.stub", Dest: "tests/ArchTest.php", Framework: profile.TestingPest},

	{Key: "workflow-lint", Source: ".github/workflows/fix-code-style.yml.stub", Dest: ".github/workflows/fix-code-style.yml", Feature: profile.FeatureLinter},
	{Key: "pint-config", Source: "pint.json.stub", Dest: "pint.json", Feature: profile.FeatureLinter},
	{Key: "workflow-phpstan", Source: ".github/workflows/phpstan.yml.stub", Dest: ".github/workflows/phpstan.yml", Feature: profile.FeatureStaticAnalysis},
	{Key: "phpstan-config", Source: "phpstan.neon.dist.stub", Dest: "phpstan.neon.dist", Feature: profile.FeatureStaticAnalysis},
	{Key: "workflow-rector", Source: ".github/workflows/rector.yml.stub", Dest: ".github/workflows/rector.yml", Feature: profile.FeatureRefactor},
	{Key: "rector-config", Source: "rector.php.stub", Dest: "rector.php", Feature: profile.FeatureRefactor},
}

// LookupArtifact finds a registry entry by key.
func LookupArtifact(key string) (Artifact, bool) {
	for _, a := range artifacts {
		if a.Key == key {
			return a, true
		}
	}
	return Artifact{}, false
}

// Artifacts returns a copy of the template registry in table order.
func Artifacts() []Artifact {
	out := make([]Artifact, len(artifacts))
	copy(out, artifacts)
	return out
}
