package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pkgsmith-labs/pkgsmith/internal/branding"
	"github.com/pkgsmith-labs/pkgsmith/internal/config"
	"github.com/pkgsmith-labs/pkgsmith/internal/output"
	"github.com/pkgsmith-labs/pkgsmith/internal/prompt"
	"github.com/pkgsmith-labs/pkgsmith/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose    bool
	flagAccessible bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` extracts a Laravel package skeleton and walks you through
configuring it: package naming, author identity, version targets, testing
framework, and optional tooling.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetVerbose(flagVerbose)
		if flagAccessible {
			prompt.SetAccessible(true)
		}

		// Skip the update hint for commands whose output gets parsed, and
		// when the check is disabled outright.
		if os.Getenv(branding.EnvVar("NO_UPDATE_CHECK")) != "" {
			return
		}
		for c := cmd; c != nil; c = c.Parent() {
			switch c.Name() {
			case "version", "config", "help", "completion":
				return
			}
		}

		// Non-blocking hint from cached version check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagAccessible, "accessible", false, "Prompt in accessible line-based mode")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
