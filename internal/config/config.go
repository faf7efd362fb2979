package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/pkgsmith-labs/pkgsmith/internal/branding"
)

const configName = "config.yaml"

// Keys persisted for pre-filling the configure prompts.
const (
	KeyAuthorName     = "author.name"
	KeyAuthorEmail    = "author.email"
	KeyAuthorUsername = "author.username"
	KeyVendorName     = "vendor.name"
)

// knownKeys is the set of keys `config set` accepts.
var knownKeys = []string{KeyAuthorName, KeyAuthorEmail, KeyAuthorUsername, KeyVendorName}

var (
	v      = viper.New()
	loaded bool
)

// Dir returns the pkgsmith home directory (~/.pkgsmith). PKGSMITH_HOME
// overrides the location entirely.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the config file location inside Dir.
func FilePath() string {
	return filepath.Join(Dir(), configName)
}

// Load (re)reads the config file and environment. A missing file is not an
// error: every key simply reads as unset. Values can be overridden through
// the environment, e.g. PKGSMITH_AUTHOR_NAME for author.name.
func Load() {
	nv := viper.New()
	nv.SetConfigFile(FilePath())
	nv.SetConfigType("yaml")
	nv.SetEnvPrefix(branding.EnvPrefix())
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()
	_ = nv.ReadInConfig()
	v, loaded = nv, true
}

func ensureLoaded() {
	if !loaded {
		Load()
	}
}

// Get returns the value for key, or "" when unset.
func Get(key string) string {
	ensureLoaded()
	return v.GetString(key)
}

// Set stores key=value and rewrites the config file, creating the home
// directory on first use. Keys outside the known set are rejected.
func Set(key, value string) error {
	if !slices.Contains(knownKeys, key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(knownKeys, ", "))
	}

	ensureLoaded()
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", Dir(), err)
	}

	v.Set(key, value)
	if err := v.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing %s: %w", FilePath(), err)
	}
	return nil
}

// List returns every configured key, sorted.
func List() []string {
	ensureLoaded()
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}
