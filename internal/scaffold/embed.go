package scaffold

import "embed"

// skeletonFS carries the full package skeleton, dotfiles included.
// Conditional and templated files are inert until activated and carry a
// .stub suffix.
//
//go:embed all:skeleton
var skeletonFS embed.FS
