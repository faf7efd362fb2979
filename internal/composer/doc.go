// Package composer builds, merges, validates, and persists composer.json
// manifests. A Builder accumulates the manifest for a configuration run;
// Merge folds it into a pre-existing manifest when the skeleton ships one;
// Validate checks documents against an embedded subset of the composer
// schema.
package composer
