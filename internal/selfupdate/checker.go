// Package selfupdate replaces the running jalur binary with a published
// GitHub release.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner = "abhisek"
	defaultRepo  = "jalur"

	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Checker talks to the GitHub releases API.
type Checker struct {
	owner, repo     string
	apiBaseURL      string
	downloadBaseURL string
	client          *http.Client
	execPath        func() (string, error)
}

type Option func(*Checker)

// WithBaseURL points the releases API at another host (tests, GitHub
// Enterprise).
func WithBaseURL(u string) Option { return func(c *Checker) { c.apiBaseURL = u } }

// WithDownloadBaseURL sets the host release assets are fetched from.
func WithDownloadBaseURL(u string) Option { return func(c *Checker) { c.downloadBaseURL = u } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Checker) { c.client = hc } }

func withExecPath(f func() (string, error)) Option { return func(c *Checker) { c.execPath = f } }

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:           defaultOwner,
		repo:            defaultRepo,
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		client:          &http.Client{Timeout: 2 * time.Minute},
		execPath:        os.Executable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Release is the newest published version.
type Release struct {
	Current         string
	Latest          string
	URL             string
	UpdateAvailable bool
}

// Latest fetches the latest release and compares it with current. Tags and
// versions are compared as semver; a leading "v" is optional.
func (c *Checker) Latest(ctx context.Context, current string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("releases API: HTTP %d", resp.StatusCode)
	}

	var body struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	latest := canonical(body.TagName)
	if latest == "" {
		return nil, fmt.Errorf("release tag %q is not a semantic version", body.TagName)
	}

	rel := &Release{Current: current, Latest: body.TagName, URL: body.HTMLURL}
	if cur := canonical(current); cur == "" || semver.Compare(latest, cur) > 0 {
		rel.UpdateAvailable = true
	}
	return rel, nil
}

// canonical returns v as a valid "vX.Y.Z" semver string, or "".
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
