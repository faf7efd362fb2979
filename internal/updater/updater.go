package updater

import (
	"net/http"
	"time"
)

// Release is the subset of a GitHub release the updater consumes.
type Release struct {
	Version string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Updater checks published releases against the running version.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase points the updater at a different API root (used by tests).
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		u.apiBase = base
	}
}

// New creates an Updater with the given current version and options. The
// default client carries a short timeout so a slow release endpoint can
// only ever stall the background refresh.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		apiBase:        githubAPIBase,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
