package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pkgsmith-labs/pkgsmith/internal/composer"
	"github.com/pkgsmith-labs/pkgsmith/internal/config"
	"github.com/pkgsmith-labs/pkgsmith/internal/scaffold"
)

var doctorDir string

func init() {
	doctorCmd.Flags().StringVar(&doctorDir, "dir", ".", "Directory to inspect for a skeleton")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the local toolchain",
	Long: `Run diagnostic checks on the tools a configuration run depends on and,
when pointed at an extracted skeleton, on the tree itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runRuntimeCheck()
		runConfigCheck()
		runSkeletonCheck(doctorDir)
		return nil
	},
}

func runRuntimeCheck() {
	fmt.Println("Runtime check:")
	checkBinary("composer")
	checkBinary("php")
	checkBinary("git")
}

func checkBinary(name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Printf("  [MISS] %s not found\n", name)
		return
	}
	fmt.Printf("  [ OK ] %s found at %s\n", name, path)
}

func runConfigCheck() {
	fmt.Println("Config check:")
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("  [INFO] No config file yet (%s)\n", path)
		return
	}
	fmt.Printf("  [ OK ] %s\n", path)
}

func runSkeletonCheck(dir string) {
	fmt.Println("Skeleton check:")

	marker, err := scaffold.ReadMarker(dir)
	if errors.Is(err, scaffold.ErrNotSkeleton) {
		fmt.Printf("  [INFO] %s is not a configurable skeleton\n", dir)
		return
	}
	if err != nil {
		fmt.Printf("  [FAIL] Cannot read marker: %v\n", err)
		return
	}
	fmt.Printf("  [ OK ] Marker present (skeleton %s, version %d)\n", marker.Skeleton, marker.Version)

	// Every registered stub should still be in place before a run.
	missing := 0
	for _, a := range scaffold.Artifacts() {
		if _, statErr := os.Stat(filepath.Join(dir, a.Source)); statErr != nil {
			fmt.Printf("  [WARN] Stub missing: %s\n", a.Source)
			missing++
		}
	}
	if missing == 0 {
		fmt.Printf("  [ OK ] All %d template stubs present\n", len(scaffold.Artifacts()))
	}

	manifestPath := filepath.Join(dir, "composer.json")
	if _, statErr := os.Stat(manifestPath); statErr != nil {
		fmt.Printf("  [INFO] No composer.json yet; configure will create one\n")
		return
	}
	res, err := composer.ValidateFile(manifestPath)
	if err != nil {
		fmt.Printf("  [WARN] Cannot validate composer.json: %v\n", err)
		return
	}
	if res.Valid {
		fmt.Printf("  [ OK ] composer.json is valid\n")
		return
	}
	fmt.Printf("  [WARN] composer.json has %d schema issue(s)\n", len(res.Issues))
}
