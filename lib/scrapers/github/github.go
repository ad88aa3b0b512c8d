// Package github assembles complete repository profiles from the
// GitHub REST API. One profile takes several independent, rate-limited
// calls; only the initial metadata call is allowed to sink the whole
// profile, every later step defaults its own fields on failure.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lauzhack-dataset/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/github")

var ErrNotFound = errors.New("repository not found")

type RepoProfile struct {
	Owner             string `json:"owner"`
	Repo              string `json:"repo"`
	Stars             int    `json:"stars"`
	Forks             int    `json:"forks"`
	Language          string `json:"language"`
	Description       string `json:"description"`
	URL               string `json:"url"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
	FirstCommitDate   string `json:"first_commit_date"`
	LastCommitDate    string `json:"last_commit_date"`
	ContributorsCount int    `json:"contributors_count"`
	Readme            string `json:"readme"`
}

type Client struct {
	api *resty.Client
	raw *resty.Client
}

type ClientOptions struct {
	// defaults to https://api.github.com
	BaseURL string
	// raw content host, defaults to https://raw.githubusercontent.com
	RawBaseURL string
	// optional, raises the rate limit ceiling; response shapes are
	// identical with or without it
	Token   string
	Timeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	rawBaseURL := opts.RawBaseURL
	if rawBaseURL == "" {
		rawBaseURL = "https://raw.githubusercontent.com"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	api := resty.New()
	api.SetBaseURL(baseURL)
	api.SetTimeout(timeout)
	api.SetHeader("user-agent", "lauzhack-dataset")
	api.SetHeader("accept", "application/vnd.github+json")
	api.SetHeader("x-github-api-version", "2022-11-28")

	raw := resty.New()
	raw.SetBaseURL(rawBaseURL)
	raw.SetTimeout(timeout)
	raw.SetHeader("user-agent", "lauzhack-dataset")

	if opts.Token != "" {
		api.SetHeader("authorization", fmt.Sprintf("token %s", opts.Token))
		raw.SetHeader("authorization", fmt.Sprintf("token %s", opts.Token))
	}

	telemetry.InstrumentResty(api, "scrapers/github/http")
	telemetry.InstrumentResty(raw, "scrapers/github/raw")

	return &Client{api: api, raw: raw}
}

type repoMetadata struct {
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Language        string `json:"language"`
	Description     string `json:"description"`
	HTMLURL         string `json:"html_url"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	DefaultBranch   string `json:"default_branch"`
}

type commitEntry struct {
	Commit struct {
		Author struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// FetchProfile produces a complete repository profile. A failed
// metadata call is terminal: it returns ErrNotFound for missing
// repositories and a plain error otherwise. Every subsequent call is
// fault-tolerant, leaving its fields at zero values.
func (c *Client) FetchProfile(ctx context.Context, owner, repo string) (RepoProfile, error) {
	ctx, span := tracer.Start(ctx, "FetchProfile")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner", owner),
		attribute.String("repo", repo),
	)

	meta, err := c.fetchMetadata(ctx, owner, repo)
	if err != nil {
		span.SetStatus(codes.Error, "metadata fetch failed")
		return RepoProfile{}, err
	}

	branch := meta.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	profile := RepoProfile{
		Owner:       owner,
		Repo:        repo,
		Stars:       meta.StargazersCount,
		Forks:       meta.ForksCount,
		Language:    meta.Language,
		Description: meta.Description,
		URL:         meta.HTMLURL,
		CreatedAt:   meta.CreatedAt,
		UpdatedAt:   meta.UpdatedAt,
	}

	if date, ok := c.fetchLastCommitDate(ctx, owner, repo); ok {
		profile.LastCommitDate = date
	}
	if date, ok := c.fetchFirstCommitDate(ctx, owner, repo, branch); ok {
		profile.FirstCommitDate = date
	}
	if count, ok := c.fetchContributorsCount(ctx, owner, repo); ok {
		profile.ContributorsCount = count
	}
	if readme, ok := c.fetchReadme(ctx, owner, repo, branch); ok {
		profile.Readme = readme
	}

	return profile, nil
}

func (c *Client) fetchMetadata(ctx context.Context, owner, repo string) (repoMetadata, error) {
	var meta repoMetadata
	res, err := c.api.R().
		SetContext(ctx).
		SetResult(&meta).
		Get(fmt.Sprintf("/repos/%s/%s", owner, repo))
	if err != nil {
		return repoMetadata{}, err
	}
	if res.StatusCode() == 404 {
		return repoMetadata{}, fmt.Errorf("%s/%s: %w", owner, repo, ErrNotFound)
	}
	if !res.IsSuccess() {
		return repoMetadata{}, fmt.Errorf("metadata request for %s/%s: status %d", owner, repo, res.StatusCode())
	}
	return meta, nil
}

func (c *Client) fetchLastCommitDate(ctx context.Context, owner, repo string) (string, bool) {
	var commits []commitEntry
	res, err := c.api.R().
		SetContext(ctx).
		SetResult(&commits).
		SetQueryParam("per_page", "1").
		Get(fmt.Sprintf("/repos/%s/%s/commits", owner, repo))
	if err != nil || !res.IsSuccess() || len(commits) == 0 {
		slog.DebugContext(ctx, "last commit unavailable", "owner", owner, "repo", repo)
		return "", false
	}
	return commits[0].Commit.Author.Date, true
}

// fetchFirstCommitDate probes the first commit page of the default
// branch and jumps to the last page when pagination advertises one.
// A single hop is assumed to be enough; enormous histories whose last
// page shifts between the probe and the follow-up read may yield a
// near-earliest commit instead.
func (c *Client) fetchFirstCommitDate(ctx context.Context, owner, repo, branch string) (string, bool) {
	var commits []commitEntry
	res, err := c.api.R().
		SetContext(ctx).
		SetResult(&commits).
		SetQueryParam("per_page", "1").
		SetQueryParam("sha", branch).
		Get(fmt.Sprintf("/repos/%s/%s/commits", owner, repo))
	if err != nil || !res.IsSuccess() {
		slog.DebugContext(ctx, "first commit unavailable", "owner", owner, "repo", repo)
		return "", false
	}

	if lastURL, ok := pagination(res).LastURL(); ok {
		var lastPage []commitEntry
		res, err := c.api.R().
			SetContext(ctx).
			SetResult(&lastPage).
			Get(lastURL)
		if err != nil || !res.IsSuccess() || len(lastPage) == 0 {
			slog.DebugContext(ctx, "first commit page unavailable", "owner", owner, "repo", repo)
			return "", false
		}
		return lastPage[len(lastPage)-1].Commit.Author.Date, true
	}

	if len(commits) == 0 {
		return "", false
	}
	return commits[len(commits)-1].Commit.Author.Date, true
}

func (c *Client) fetchContributorsCount(ctx context.Context, owner, repo string) (int, bool) {
	var contributors []struct{}
	res, err := c.api.R().
		SetContext(ctx).
		SetResult(&contributors).
		SetQueryParam("per_page", "1").
		Get(fmt.Sprintf("/repos/%s/%s/contributors", owner, repo))
	if err != nil || !res.IsSuccess() {
		slog.DebugContext(ctx, "contributors unavailable", "owner", owner, "repo", repo)
		return 0, false
	}
	if count, ok := pagination(res).LastPage(); ok {
		return count, true
	}
	return len(contributors), true
}

// fetchReadme tries raw content on the default branch, then "main",
// then "master", stopping at the first hit.
func (c *Client) fetchReadme(ctx context.Context, owner, repo, branch string) (string, bool) {
	for _, candidate := range []string{branch, "main", "master"} {
		res, err := c.raw.R().
			SetContext(ctx).
			Get(fmt.Sprintf("/%s/%s/%s/README.md", owner, repo, candidate))
		if err == nil && res.IsSuccess() {
			return res.String(), true
		}
	}
	return "", false
}
