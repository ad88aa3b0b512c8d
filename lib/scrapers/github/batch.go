package github

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// EnrichBatch resolves every hosting url to a repository profile, in
// input order, with a fixed delay between consecutive identifiers to
// respect the API rate limit. Urls that fail identifier parsing or
// profile aggregation are skipped; the returned map only holds urls
// that resolved.
func EnrichBatch(ctx context.Context, client *Client, urls []string, delay time.Duration) map[string]RepoProfile {
	ctx, span := tracer.Start(ctx, "EnrichBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("urls", len(urls)))

	results := map[string]RepoProfile{}
	for i, url := range urls {
		if i > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return results
			}
		}

		owner, repo, ok := ParseRepoURL(url)
		if !ok {
			slog.DebugContext(ctx, "skipping non-repository link", "url", url)
			continue
		}

		slog.InfoContext(
			ctx, "enriching repository",
			"progress", i+1,
			"total", len(urls),
			"owner", owner,
			"repo", repo,
		)
		profile, err := client.FetchProfile(ctx, owner, repo)
		if err != nil {
			slog.WarnContext(
				ctx, "failed to build repository profile",
				"owner", owner,
				"repo", repo,
				"err", err,
			)
			continue
		}
		results[url] = profile
	}

	span.SetAttributes(attribute.Int("resolved", len(results)))
	return results
}
