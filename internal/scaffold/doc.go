// Package scaffold owns the embedded Laravel package skeleton and the
// machinery that turns it into a configured package. It powers the
// "pkgsmith new" command (skeleton extraction) and the "pkgsmith configure"
// command (token substitution, conditional template activation, manifest
// assembly, installer handoff).
package scaffold
