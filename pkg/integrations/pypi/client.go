package pypi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/autogen/pkg/httputil"
	"github.com/matzehuels/autogen/pkg/integrations"
)

// DefaultURL is the JSON API base of the public index.
const DefaultURL = "https://pypi.org/pypi"

// ProjectInfo is the subset of index metadata autogen needs.
type ProjectInfo struct {
	Name     string   `json:"name"`     // display name as registered
	Version  string   `json:"version"`  // latest version
	Summary  string   `json:"summary"`  // one-line description
	Releases []string `json:"releases"` // every published version, sorted
}

// Client talks to a PyPI-compatible JSON API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for baseURL (DefaultURL when empty). A nil
// cache disables caching.
func NewClient(cache *httputil.Cache, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if cache != nil {
		cache = cache.Namespace("pypi:" + baseURL + ":")
	}
	headers := map[string]string{"User-Agent": integrations.UserAgent()}
	return &Client{
		Client:  integrations.NewClient(cache, headers),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchProject retrieves metadata for a project. A project unknown to the
// index yields an error wrapping [integrations.ErrNotFound].
func (c *Client) FetchProject(ctx context.Context, name string, refresh bool) (*ProjectInfo, error) {
	name = integrations.NormalizePkgName(name)

	var info ProjectInfo
	err := c.Cached(ctx, name, refresh, &info, func() error {
		return c.fetch(ctx, name, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// HasRelease reports whether version of project is already published.
// A project the index has never seen has no releases.
func (c *Client) HasRelease(ctx context.Context, name, version string) (bool, error) {
	info, err := c.FetchProject(ctx, name, true)
	if errors.Is(err, integrations.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, r := range info.Releases {
		if r == version {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) fetch(ctx context.Context, name string, info *ProjectInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, name), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi project %s", err, name)
		}
		return err
	}

	releases := make([]string, 0, len(data.Releases))
	// yanked and file-less versions still block a re-upload, so all count
	for v := range data.Releases {
		releases = append(releases, v)
	}
	sort.Strings(releases)

	*info = ProjectInfo{
		Name:     data.Info.Name,
		Version:  data.Info.Version,
		Summary:  data.Info.Summary,
		Releases: releases,
	}
	return nil
}

type apiResponse struct {
	Info     apiInfo               `json:"info"`
	Releases map[string][]apiFile `json:"releases"`
}

type apiInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}

type apiFile struct {
	Filename string `json:"filename"`
	Yanked   bool   `json:"yanked"`
}
