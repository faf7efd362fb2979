// Command pkgsmith turns the Laravel package skeleton into a ready-to-ship
// package: it collects a package profile, rewrites placeholders, activates
// the chosen tooling stubs, and merges composer.json.
package main

import (
	"os"

	"github.com/pkgsmith-labs/pkgsmith/internal/cli"
	"github.com/pkgsmith-labs/pkgsmith/internal/output"
)

// Build identity, injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
