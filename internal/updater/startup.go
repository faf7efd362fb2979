package updater

import (
	"fmt"
	"io"
	"time"

	"github.com/pkgsmith-labs/pkgsmith/internal/branding"
	"github.com/pkgsmith-labs/pkgsmith/internal/output"
)

// CheckAndPrintBanner prints a one-line hint when the last release lookup
// found a newer version. It never blocks the command: a stale stamp only
// schedules a background refresh that lands before the next invocation.
func (u *Updater) CheckAndPrintBanner(w io.Writer, configDir string) {
	check, err := readCheck(configDir)
	if err != nil {
		// An unreadable stamp is treated as missing so the refresh below
		// rewrites it.
		check = nil
	}

	if check != nil && check.Newer {
		link := check.URL
		if link == "" {
			link = "https://github.com/" + branding.GitHubRepo() + "/releases"
		}
		fmt.Fprintf(w, "\n%s %s -> %s  %s\n\n",
			output.StyleHeading.Render("Update available:"),
			check.Current, check.Latest,
			output.StyleDim.Render(link))
	}

	if check.stale(checkTTL) {
		go u.refreshCheck(configDir)
	}
}

// refreshCheck fetches the latest release and rewrites the stamp. It runs
// in a background goroutine and only ever reports failures at debug level.
func (u *Updater) refreshCheck(configDir string) {
	release, err := u.LatestRelease()
	if err != nil {
		output.Logger.Debug("update check failed", "error", err)
		return
	}

	newer, err := newerAvailable(u.currentVersion, release.Version)
	if err != nil {
		// Dev builds carry non-semver versions and never prompt.
		output.Logger.Debug("skipping update comparison", "current", u.currentVersion, "error", err)
		return
	}

	check := &releaseCheck{
		Current:   u.currentVersion,
		Latest:    release.Version,
		URL:       release.HTMLURL,
		Newer:     newer,
		CheckedAt: time.Now(),
	}
	if err := check.write(configDir); err != nil {
		output.Logger.Debug("saving release check", "error", err)
	}
}
