package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgsmith-labs/pkgsmith/internal/composer"
	"github.com/pkgsmith-labs/pkgsmith/internal/output"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a composer.json against the schema",
	Long: `Check a composer manifest against the composer.json schema subset and
report each violation with its document path.

Example:
  pkgsmith validate ./my-cool-tool/composer.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "composer.json"
		if len(args) == 1 {
			path = args[0]
		}

		res, err := composer.ValidateFile(path)
		if err != nil {
			return err
		}

		if res.Valid {
			output.Println(output.FormatCheckmark(path + " is valid"))
			return nil
		}

		output.Printf("%s has %d issue(s):\n", path, len(res.Issues))
		for _, issue := range res.Issues {
			output.Printf("  %s: %s\n", issue.Path, issue.Message)
		}
		return fmt.Errorf("%s failed validation", path)
	},
}
