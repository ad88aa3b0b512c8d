package github

import (
	"regexp"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// GitHub expresses pagination through the Link response header, e.g.
//
//	<https://api.github.com/repositories/1/commits?per_page=1&page=34>; rel="last"
//
// The aggregator only ever needs to know whether a last page exists and
// how to reach it, so that is all this type exposes.
var lastLinkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="last"`)
var lastPageRegex = regexp.MustCompile(`[?&]page=(\d+)>;\s*rel="last"`)

type paginated struct {
	link string
}

func pagination(res *resty.Response) paginated {
	return paginated{link: res.Header().Get("Link")}
}

// LastURL returns the url of the last page, when one is advertised.
func (p paginated) LastURL() (string, bool) {
	m := lastLinkRegex.FindStringSubmatch(p.link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LastPage returns the page number of the last page, when one is
// advertised. With per_page=1 this doubles as a total item count.
func (p paginated) LastPage() (int, bool) {
	m := lastPageRegex.FindStringSubmatch(p.link)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
