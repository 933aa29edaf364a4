package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/TheBunnyMan123/bunny-bot/bot"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/TheBunnyMan123/bunny-bot/bot/preview/transport"
)

// DefaultAPIBase is the public GitHub REST endpoint.
const DefaultAPIBase = "https://api.github.com"

const acceptRaw = "application/vnd.github.raw+json"

// Owner is the repository owner block of the repos API.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Repo holds the fields of GET /repos/{owner}/{repo} used for previews.
type Repo struct {
	FullName        string `json:"full_name"`
	Owner           Owner  `json:"owner"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Forks           int    `json:"forks"`
	OpenIssues      int    `json:"open_issues"`
	StargazersCount int    `json:"stargazers_count"`
}

// Options configures a Client.
type Options struct {
	// APIBase overrides DefaultAPIBase, e.g. for GitHub Enterprise.
	APIBase string

	HTTP transport.Options
}

// Client fetches repository metadata from the GitHub REST API.
type Client struct {
	http    *transport.Client
	apiBase string
	logger  bot.Logger
}

// New returns a GitHub client.
func New(logger bot.Logger, opts Options) *Client {
	if logger == nil {
		logger = bot.NopLogger{}
	}
	apiBase := strings.TrimRight(strings.TrimSpace(opts.APIBase), "/")
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if opts.HTTP.Name == "" {
		opts.HTTP.Name = "github-api"
	}
	return &Client{
		http:    transport.New(opts.HTTP),
		apiBase: apiBase,
		logger:  logger,
	}
}

// RepoPath extracts owner and repo from a github.com URL. Anything after the
// repo segment (tree, blob, issues) is ignored, as is a trailing ".git".
func RepoPath(raw string) (owner, repo string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	segments := make([]string, 0, 2)
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
		if len(segments) == 2 {
			break
		}
	}
	if len(segments) < 2 {
		return "", "", fmt.Errorf("expected owner/repo path, got %q", u.Path)
	}

	owner = segments[0]
	repo = strings.TrimSuffix(segments[1], ".git")
	if repo == "" {
		return "", "", fmt.Errorf("empty repository name in %q", u.Path)
	}
	return owner, repo, nil
}

// RepoURL returns the API endpoint for owner/repo.
func (c *Client) RepoURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s", c.apiBase, url.PathEscape(owner), url.PathEscape(repo))
}

// FetchRepo fetches the repository that u points at.
func (c *Client) FetchRepo(ctx context.Context, u preview.ResolvedURL) (*Repo, error) {
	owner, name, err := RepoPath(u.Raw)
	if err != nil {
		return nil, preview.NewMalformedURLError(preview.KindGitHub, u.Raw, err)
	}

	endpoint := c.RepoURL(owner, name)
	c.logger.Debug("github: fetching repo", "owner", owner, "repo", name)

	header := http.Header{}
	header.Set("Accept", acceptRaw)

	resp, err := c.http.Get(ctx, endpoint, header)
	if err != nil {
		return nil, preview.NewTransportError(preview.KindGitHub, endpoint, err)
	}
	if !resp.OK() {
		return nil, preview.NewStatusError(preview.KindGitHub, endpoint, resp.StatusCode)
	}

	var repo Repo
	if err := json.Unmarshal(resp.Body, &repo); err != nil {
		return nil, preview.NewDecodeError(preview.KindGitHub, endpoint, err)
	}
	if err := repo.validate(); err != nil {
		return nil, preview.NewDecodeError(preview.KindGitHub, endpoint, err)
	}
	return &repo, nil
}

func (r *Repo) validate() error {
	switch {
	case r.FullName == "":
		return errors.New("missing full_name")
	case r.HTMLURL == "":
		return errors.New("missing html_url")
	case r.Owner.Login == "":
		return errors.New("missing owner.login")
	}
	return nil
}
