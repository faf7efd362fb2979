// Package updater implements the startup version check. It queries GitHub
// for the latest release, caches the result under the config directory for
// a day, and prints a hint when a newer version exists. The check never
// blocks a command: stale caches refresh in the background for the next run.
package updater
