package github

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		repo  string
		ok    bool
	}{
		{"https://github.com/acme/widget", "acme", "widget", true},
		{"https://github.com/acme/widget.git", "acme", "widget", true},
		{"https://github.com/acme/widget/", "acme", "widget", true},
		{"  https://github.com/acme/widget  ", "acme", "widget", true},
		{"https://example.com/not-github", "", "", false},
		{"https://github.com/acme/widget/tree/main", "", "", false},
		{"https://github.com/acme", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		owner, repo, ok := ParseRepoURL(c.url)
		require.Equal(t, c.ok, ok, c.url)
		require.Equal(t, c.owner, owner, c.url)
		require.Equal(t, c.repo, repo, c.url)
	}
}

func TestPagination(t *testing.T) {
	header := `<https://api.github.com/repositories/1/commits?per_page=1&page=2>; rel="next", ` +
		`<https://api.github.com/repositories/1/commits?per_page=1&page=34>; rel="last"`

	p := paginated{link: header}

	url, ok := p.LastURL()
	require.True(t, ok)
	require.Equal(t, "https://api.github.com/repositories/1/commits?per_page=1&page=34", url)

	page, ok := p.LastPage()
	require.True(t, ok)
	require.Equal(t, 34, page)
}

func TestPaginationSinglePage(t *testing.T) {
	p := paginated{link: ""}

	_, ok := p.LastURL()
	require.False(t, ok)

	_, ok = p.LastPage()
	require.False(t, ok)
}
