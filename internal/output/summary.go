package output

import (
	"fmt"
	"io"
)

// RunSummary carries a configure outcome for rendering without importing
// the scaffold package.
type RunSummary struct {
	Root           string
	Package        string
	Activated      []string
	Written        []string
	Skipped        []string
	ManifestPath   string
	ManifestMerged bool
	InstallRan     bool
	InstallErr     error
	MarkerRemoved  bool
	Warnings       []string
}

// PrintResult writes the post-configure summary: what was activated and
// written, what stayed inert and why, the manifest outcome, the installer
// outcome, and any warnings.
func PrintResult(w io.Writer, s *RunSummary) {
	fmt.Fprintln(w, StyleHeading.Render("Configured "+s.Package)+" "+StyleDim.Render("in "+s.Root))
	fmt.Fprintln(w)

	for _, f := range s.Activated {
		fmt.Fprintln(w, "  "+FormatFileLine(f, StatusActivated))
	}
	for _, f := range s.Written {
		fmt.Fprintln(w, "  "+FormatFileLine(f, StatusWritten))
	}

	if len(s.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleDim.Render("Skipped:"))
		for _, entry := range s.Skipped {
			fmt.Fprintln(w, StyleDim.Render("  - "+entry))
		}
	}

	fmt.Fprintln(w)
	if s.ManifestMerged {
		fmt.Fprintln(w, FormatCheckmark(s.ManifestPath+" merged with the existing manifest"))
	} else {
		fmt.Fprintln(w, FormatCheckmark(s.ManifestPath+" written"))
	}

	switch {
	case s.InstallRan && s.InstallErr == nil:
		fmt.Fprintln(w, FormatCheckmark("composer install completed"))
	case s.InstallErr != nil:
		fmt.Fprintln(w, StatusStyle(StatusFailed).Render("✗")+" composer install failed: "+s.InstallErr.Error())
	default:
		fmt.Fprintln(w, StyleDim.Render("- composer install skipped"))
	}

	if s.MarkerRemoved {
		fmt.Fprintln(w, FormatCheckmark("skeleton marker removed"))
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHeading.Render("Warnings:"))
		for _, warning := range s.Warnings {
			fmt.Fprintln(w, "  ⚠ "+warning)
		}
	}
}
