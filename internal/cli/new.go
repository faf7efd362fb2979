package cli

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/pkgsmith-labs/pkgsmith/internal/branding"
	"github.com/pkgsmith-labs/pkgsmith/internal/output"
	"github.com/pkgsmith-labs/pkgsmith/internal/prompt"
	"github.com/pkgsmith-labs/pkgsmith/internal/scaffold"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	newDir       string
	newConfigure bool
)

func init() {
	newCmd.Flags().StringVar(&newDir, "dir", "", "Parent directory for the new package (default: .)")
	newCmd.Flags().BoolVar(&newConfigure, "configure", false, "Run configure right after extraction")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Extract a fresh package skeleton",
	Long: `Extract the embedded Laravel package skeleton into a new directory.

The tree stays inert until 'pkgsmith configure' runs in it: stubs keep
their .stub suffix and every placeholder token is left in place.

Examples:
  pkgsmith new my-cool-tool
  pkgsmith new my-cool-tool --dir ~/code --configure`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateName(name); err != nil {
			return err
		}

		outDir := resolveOutputDir(name)
		files, err := scaffold.Extract(outDir)
		if err != nil {
			return err
		}

		fmt.Printf("Created package skeleton at %s/\n", outDir)
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}

		if chainConfigure() {
			fmt.Println()
			return runConfigure(cmd.Context(), outDir)
		}

		// Next steps guidance.
		fmt.Println("\nNext steps:")
		fmt.Printf("  1. cd %s\n", outDir)
		fmt.Printf("  2. Run '%s configure' to fill in names, versions, and tooling\n", branding.CLIName())
		fmt.Println("  3. Put your package code in src/")
		return nil
	},
}

// ─── Helpers ───────────────────────────────────────────────────────

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9-]*", name)
	}
	return nil
}

func resolveOutputDir(name string) string {
	if newDir != "" {
		return filepath.Join(newDir, name)
	}
	return filepath.Join(".", name)
}

// chainConfigure decides whether extraction flows straight into the
// configure run: always with --configure, otherwise by asking when a
// terminal is attached.
func chainConfigure() bool {
	if newConfigure {
		return true
	}
	if !output.IsTTY() {
		return false
	}
	ok, err := prompt.Confirm("Configure the package now?", true)
	if err != nil {
		return false
	}
	return ok
}
