package github

import (
	"regexp"
	"strings"
)

var repoURLRegex = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ParseRepoURL normalizes a github.com repository url into its
// (owner, repo) identifier pair. Any other url shape yields ok=false;
// callers skip the url rather than failing their batch.
func ParseRepoURL(rawURL string) (owner string, repo string, ok bool) {
	m := repoURLRegex.FindStringSubmatch(strings.TrimSpace(rawURL))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
