// Package config manages user-level settings stored at ~/.pkgsmith/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the author identity used to pre-fill the configure prompts.
package config
