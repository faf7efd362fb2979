// Package installer hands a configured package off to composer for
// dependency installation. The outcome is always reported as a Result so
// a missing or failing composer never aborts a configuration run.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrComposerNotFound is reported when no composer binary is on PATH.
var ErrComposerNotFound = errors.New("composer binary not found in PATH")

// Result describes one installer invocation.
type Result struct {
	Ran      bool   // composer was found and executed
	ExitCode int    // process exit code when Ran
	Output   string // combined stdout/stderr
	Err      error  // lookup or execution failure
}

// Installer abstracts the dependency installer so configuration runs can
// be tested without composer present.
type Installer interface {
	Install(ctx context.Context, dir string) *Result
}

// Composer runs the real composer binary.
type Composer struct{}

// Install runs `composer install --no-interaction` in dir.
func (Composer) Install(ctx context.Context, dir string) *Result {
	bin, err := exec.LookPath("composer")
	if err != nil {
		return &Result{Err: ErrComposerNotFound}
	}

	cmd := exec.CommandContext(ctx, bin, "install", "--no-interaction")
	cmd.Dir = dir
	out, runErr := cmd.CombinedOutput()

	res := &Result{Ran: true, Output: strings.TrimSpace(string(out))}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		res.Err = fmt.Errorf("composer install: %w", runErr)
	}
	return res
}

// Fake records invocations and returns a canned result. It stands in for
// Composer in tests.
type Fake struct {
	Dirs   []string
	Result *Result
}

// Install records the call and returns the configured result, or a plain
// success when none is set.
func (f *Fake) Install(_ context.Context, dir string) *Result {
	f.Dirs = append(f.Dirs, dir)
	if f.Result != nil {
		return f.Result
	}
	return &Result{Ran: true}
}
