package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgsmith-labs/pkgsmith/internal/config"
	"github.com/pkgsmith-labs/pkgsmith/internal/installer"
	"github.com/pkgsmith-labs/pkgsmith/internal/output"
	"github.com/pkgsmith-labs/pkgsmith/internal/profile"
	"github.com/pkgsmith-labs/pkgsmith/internal/prompt"
	"github.com/pkgsmith-labs/pkgsmith/internal/scaffold"
	"github.com/pkgsmith-labs/pkgsmith/internal/textcase"
)

var (
	confDir            string
	confAuthorName     string
	confAuthorEmail    string
	confAuthorUsername string
	confVendor         string
	confPackage        string
	confDescription    string
	confClass          string
	confPHP            string
	confLaravel        string
	confTesting        string
	confFeatures       []string
	confStrict         bool
	confInstall        bool
	confRemoveMarker   bool
	confNoInteraction  bool
)

func init() {
	f := configureCmd.Flags()
	f.StringVar(&confDir, "dir", ".", "Skeleton directory to configure")
	f.StringVar(&confAuthorName, "author-name", "", "Author full name")
	f.StringVar(&confAuthorEmail, "author-email", "", "Author email address")
	f.StringVar(&confAuthorUsername, "author-username", "", "Author VCS username")
	f.StringVar(&confVendor, "vendor", "", "Vendor name (e.g. Acme)")
	f.StringVar(&confPackage, "package", "", "Package slug (e.g. my-cool-tool)")
	f.StringVar(&confDescription, "description", "", "Package description")
	f.StringVar(&confClass, "class", "", "Main class name (default: derived from the package slug)")
	f.StringVar(&confPHP, "php", "", "Minimum PHP version (default: newest supported)")
	f.StringVar(&confLaravel, "laravel", "", "Laravel major line (default: newest supported)")
	f.StringVar(&confTesting, "testing", "phpunit", "Testing framework: phpunit or pest")
	f.StringSliceVar(&confFeatures, "features", nil, "Features to enable: dependabot,changelog,linter,static-analysis,refactor")
	f.BoolVar(&confStrict, "strict", false, "Use strict static-analysis rules")
	f.BoolVar(&confInstall, "install", false, "Run composer install after configuring")
	f.BoolVar(&confRemoveMarker, "remove-marker", true, "Remove the skeleton marker when done")
	f.BoolVar(&confNoInteraction, "no-interaction", false, "Never prompt; fail when a required flag is missing")

	// Assigned here instead of in the literal: confirmHook refers back to
	// configureCmd, so an inline RunE would close an initialization cycle.
	configureCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runConfigure(cmd.Context(), confDir)
	}
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure an extracted package skeleton",
	Long: `Fill in an extracted skeleton: substitute placeholder tokens, activate
the stubs your choices call for, generate the package sources, and write
composer.json. The run ends with optional dependency installation and
removal of the skeleton marker.

Answers come from prompts, pre-filled from your saved config. Pass
--no-interaction plus the required flags to script the whole run.

Examples:
  pkgsmith configure
  pkgsmith configure --dir ./my-cool-tool --testing pest
  pkgsmith configure --no-interaction --author-name "Taylor Example" \
    --author-email taylor@example.com --package my-cool-tool \
    --description "A tool" --vendor Acme --features linter,static-analysis`,
	Args: cobra.NoArgs,
}

// runConfigure drives a full configuration of the skeleton at dir. It is
// shared with `new --configure`, which calls it with unparsed flags so
// every answer comes from prompts.
func runConfigure(ctx context.Context, dir string) error {
	marker, err := scaffold.ReadMarker(dir)
	if err != nil {
		return err
	}
	output.Logger.Debug("found skeleton marker", "skeleton", marker.Skeleton, "version", marker.Version)

	p, err := buildProfile(dir)
	if err != nil {
		return err
	}

	hooks := scaffold.Hooks{
		ConfirmInstall: confirmHook("install", confInstall,
			"Run composer install now?", true),
		ConfirmRemoveMarker: confirmHook("remove-marker", confRemoveMarker,
			"Finish up and remove the skeleton marker?", true),
	}

	orch := scaffold.NewOrchestrator(dir, p, spinnerInstaller{installer.Composer{}}, hooks)
	res, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	output.PrintResult(os.Stdout, summarizeRun(p, res))
	if res.Install != nil && res.Install.Err != nil && res.Install.Output != "" {
		output.Logger.Debug("composer output", "output", res.Install.Output)
	}
	return nil
}

// buildProfile assembles the profile from flags alone (--no-interaction) or
// from prompts pre-filled with saved config and flag values.
func buildProfile(dir string) (*profile.Profile, error) {
	if confNoInteraction {
		return profileFromFlags()
	}

	config.Load()
	defaults := prompt.Defaults{
		AuthorName:     firstNonEmpty(confAuthorName, config.Get(config.KeyAuthorName)),
		AuthorEmail:    firstNonEmpty(confAuthorEmail, config.Get(config.KeyAuthorEmail)),
		AuthorUsername: firstNonEmpty(confAuthorUsername, config.Get(config.KeyAuthorUsername)),
		VendorName:     firstNonEmpty(confVendor, config.Get(config.KeyVendorName)),
		PackageSlug:    firstNonEmpty(confPackage, suggestSlug(dir)),
		Description:    confDescription,
	}
	return prompt.Collect(defaults)
}

// profileFromFlags builds and validates the profile without prompting.
func profileFromFlags() (*profile.Profile, error) {
	required := []struct{ flag, value string }{
		{"author-name", confAuthorName},
		{"author-email", confAuthorEmail},
		{"package", confPackage},
		{"description", confDescription},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, "--"+r.flag)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("--no-interaction requires %s", strings.Join(missing, ", "))
	}

	p := &profile.Profile{
		AuthorName:     confAuthorName,
		AuthorEmail:    confAuthorEmail,
		AuthorUsername: confAuthorUsername,
		VendorName:     confVendor,
		PackageSlug:    confPackage,
		Description:    confDescription,
		ClassName:      confClass,
		PHPVersion:     confPHP,
		LaravelVersion: confLaravel,
		StrictAnalysis: confStrict,
	}

	if p.AuthorUsername == "" {
		p.AuthorUsername = profile.DefaultUsername(p.AuthorName)
	}
	if p.VendorName == "" {
		p.VendorName = profile.DefaultVendorName(p.AuthorUsername)
	}
	if p.LaravelVersion == "" {
		lines := profile.LaravelVersions()
		p.LaravelVersion = lines[len(lines)-1]
	}
	if p.PHPVersion == "" {
		compat := profile.CompatiblePHPVersions(p.LaravelVersion)
		p.PHPVersion = compat[len(compat)-1]
	}

	testing, err := profile.ParseTestingFramework(confTesting)
	if err != nil {
		return nil, fmt.Errorf("--testing: %w", err)
	}
	p.Testing = testing

	features := profile.FeatureSet{}
	for _, name := range confFeatures {
		f, err := profile.ParseFeature(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--features: %w", err)
		}
		features[f] = true
	}
	p.Features = features

	if err := p.Finalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// confirmHook resolves one of the post-configuration questions. A flag set
// on the command line or a --no-interaction run answers without prompting.
func confirmHook(flag string, value bool, question string, def bool) func() bool {
	return func() bool {
		if confNoInteraction || configureCmd.Flags().Changed(flag) {
			return value
		}
		ok, err := prompt.Confirm(question, def)
		if err != nil {
			return false
		}
		return ok
	}
}

// spinnerInstaller wraps the composer handoff in a progress spinner.
type spinnerInstaller struct {
	inner installer.Installer
}

func (s spinnerInstaller) Install(ctx context.Context, dir string) *installer.Result {
	var res *installer.Result
	err := output.RunWithSpinner(ctx, "Running composer install...", func() error {
		res = s.inner.Install(ctx, dir)
		return nil
	})
	if res == nil {
		res = &installer.Result{Err: err}
	}
	return res
}

func summarizeRun(p *profile.Profile, res *scaffold.Result) *output.RunSummary {
	s := &output.RunSummary{
		Root:           res.Root,
		Package:        p.FullPackageName(),
		Activated:      res.Activated,
		Written:        res.Written,
		Skipped:        res.Skipped,
		ManifestPath:   res.ManifestPath,
		ManifestMerged: res.ManifestMerged,
		MarkerRemoved:  res.MarkerRemoved,
		Warnings:       res.Warnings,
	}
	if res.Install != nil {
		s.InstallRan = res.Install.Ran
		s.InstallErr = res.Install.Err
	}
	return s
}

// suggestSlug offers the directory name as the package slug when it
// already has slug shape.
func suggestSlug(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	slug := textcase.Slugify(filepath.Base(abs))
	if profile.ValidateSlug(slug) != nil {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
