// Package github provides repository metadata enrichment through the
// GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// AuthenticatedRate is the proactive throttle for token-backed
	// requests (~1.2 req/sec, under the 5000/hour quota).
	AuthenticatedRate = 1.2

	// UnauthenticatedRate is the proactive throttle for anonymous
	// requests. GitHub allows 60 per hour.
	UnauthenticatedRate = 1.0 / 60.0
)

// Ensure Enricher implements the interface.
var _ driven.RepoEnricher = (*Enricher)(nil)

// Enricher fetches repository metadata from GitHub. Outbound calls go
// through a token bucket sized to the applicable API quota.
type Enricher struct {
	gh      *gh.Client
	limiter *rate.Limiter
}

// NewEnricher creates an enricher. An empty token means unauthenticated
// requests under the much smaller anonymous quota.
func NewEnricher(ctx context.Context, token string) *Enricher {
	var httpClient *http.Client
	limit := rate.Limit(UnauthenticatedRate)

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		limit = rate.Limit(AuthenticatedRate)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = DefaultTimeout

	return &Enricher{
		gh:      gh.NewClient(httpClient),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Enrich resolves metadata for a github.com repository URL. Foreign hosts
// return ErrInvalidInput, unknown repositories ErrNotFound.
func (e *Enricher) Enrich(ctx context.Context, repoURL string) (domain.RepoInfo, error) {
	owner, repo, err := parseRepoURL(repoURL)
	if err != nil {
		return domain.RepoInfo{}, err
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return domain.RepoInfo{}, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := e.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return domain.RepoInfo{}, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, owner, repo)
		}
		return domain.RepoInfo{}, fmt.Errorf("get repo %s/%s: %w", owner, repo, err)
	}

	return repoInfo(repository), nil
}

// repoInfo maps the API response onto the domain projection.
func repoInfo(r *gh.Repository) domain.RepoInfo {
	return domain.RepoInfo{
		Description: r.GetDescription(),
		Topics:      r.Topics,
		Stars:       r.GetStargazersCount(),
	}
}

// parseRepoURL extracts owner and repository from a github.com URL.
// Trailing .git and deeper paths (tree, blob) are tolerated.
func parseRepoURL(raw string) (owner, repo string, err error) {
	if raw == "" {
		return "", "", fmt.Errorf("%w: empty repository url", domain.ErrInvalidInput)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return "", "", fmt.Errorf("%w: host %q is not github.com", domain.ErrInvalidInput, u.Host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q has no owner/repo path", domain.ErrInvalidInput, raw)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
