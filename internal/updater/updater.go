// Package updater compares the running version with the latest GitHub release.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const githubAPIBase = "https://api.github.com"

// Release is the subset of a GitHub release the check needs.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Result of a version check.
type Result struct {
	Current   string
	Latest    string
	Available bool
}

type Updater struct {
	currentVersion string
	repo           string
	apiBase        string
	httpClient     *http.Client
}

type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase points the updater at another GitHub API host.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		u.apiBase = strings.TrimRight(base, "/")
	}
}

// New creates an Updater for repo ("owner/name").
func New(currentVersion, repo string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		repo:           repo,
		apiBase:        githubAPIBase,
		httpClient:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// Check fetches the latest release and compares it with the current version.
// Builds without a semver version, such as "dev", never report an update and
// skip the network call.
func (u *Updater) Check(ctx context.Context) (*Result, error) {
	if _, err := parseSemver(u.currentVersion); err != nil {
		return &Result{Current: u.currentVersion}, nil
	}

	release, err := u.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.TagName)
	if err != nil {
		return nil, err
	}

	return &Result{
		Current:   u.currentVersion,
		Latest:    strings.TrimPrefix(release.TagName, "v"),
		Available: available,
	}, nil
}

func (u *Updater) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", u.apiBase, u.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "votd-tui-updater")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("release not found")
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release has no tag")
	}
	return &release, nil
}

// CompareVersions returns -1, 0 or 1 as current is older, equal or newer
// than latest. A leading "v" is ignored.
func CompareVersions(current, latest string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return 0, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.Compare(lv), nil
}

func IsUpdateAvailable(current, latest string) (bool, error) {
	cmp, err := CompareVersions(current, latest)
	if err != nil {
		return false, err
	}
	return cmp == -1, nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
