package projects

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"lauzhack-dataset/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// a project's fields sit in the last few lines before its link,
	// anything earlier is unrelated page noise
	tailWindow = 12

	maxTeamLineLength    = 180
	maxDescriptionLength = 320
	// a short comma-bearing line looks like another project's team line
	maxInlineTeamLength = 120
	maxHeadingLength    = 20
)

var markerRegex = regexp.MustCompile(`\[\[LINK_(\d+)\]\]`)
var awardRegex = regexp.MustCompile(`(?i)\b(1st|2nd|3rd)\b|\bplace\b|\bwinner\b|\bprize\b`)

var altLinkLabels = map[string]bool{
	"link":       true,
	"demo":       true,
	"repository": true,
	"repo":       true,
	"github":     true,
	"gitlab":     true,
}

// discoverBoundaries replaces every project link anchor in-document
// with a positional [[LINK_<i>]] marker and returns the recorded hrefs
// in document order. Anchors labeled exactly "Link" are preferred;
// pages without them fall back to a small set of alternate labels.
func discoverBoundaries(ctx context.Context, main *goquery.Selection) []string {
	span := trace.SpanFromContext(ctx)

	anchors := main.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(a.Text()), "link")
	})
	if anchors.Length() == 0 {
		anchors = main.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
			return altLinkLabels[strings.ToLower(strings.TrimSpace(a.Text()))]
		})
		if anchors.Length() > 0 {
			span.AddEvent("using alternate link labels")
		}
	}

	var hrefs []string
	anchors.Each(func(i int, a *goquery.Selection) {
		hrefs = append(hrefs, strings.TrimSpace(a.AttrOr("href", "")))
		a.SetText(fmt.Sprintf("[[LINK_%d]]", i))
	})
	span.SetAttributes(attribute.Int("anchors", len(hrefs)))
	return hrefs
}

// splitBlocks assigns to each marker index the text between the
// previous marker and itself.
func splitBlocks(text string) map[int]string {
	blocks := map[int]string{}
	prev := 0
	for _, m := range markerRegex.FindAllStringSubmatchIndex(text, -1) {
		idx, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		blocks[idx] = text[prev:m[0]]
		prev = m[1]
	}
	return blocks
}

// parseBlock recovers one project record from the text block preceding
// its link marker. Blocks with no content are skipped, as are blocks
// whose recovered name is the "Projects" section header.
func parseBlock(year int, block, href string, vocab []string) (Project, bool) {
	var lines []string
	for _, ln := range strings.Split(block, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return Project{}, false
	}
	tail := lines
	if len(tail) > tailWindow {
		tail = tail[len(tail)-tailWindow:]
	}

	teamIdx := teamLineIndex(tail)
	team := tail[teamIdx]

	description, titleIdx := collectDescription(tail, teamIdx)

	titleLine := tail[0]
	if titleIdx >= 0 && titleIdx < len(tail) {
		titleLine = tail[titleIdx]
	}
	name, awards := splitTitle(titleLine)
	if strings.EqualFold(name, "projects") {
		return Project{}, false
	}

	link := resolveLink(year, href)
	haystack := strings.Join([]string{name, awards, description}, " ")

	return Project{
		Year:        year,
		Name:        name,
		Awards:      awards,
		Description: description,
		Team:        team,
		Link:        link,
		Tags:        MatchTags(haystack, vocab),
	}, true
}

// teamLineIndex scans tail-to-head for the lowest line that names
// several people: it carries a comma or the word "and" and stays under
// the length cap. The last line wins when nothing qualifies.
func teamLineIndex(tail []string) int {
	for k := len(tail) - 1; k >= 0; k-- {
		ln := tail[k]
		if len(ln) > maxTeamLineLength {
			continue
		}
		if strings.Contains(ln, ",") || strings.Contains(strings.ToLower(ln), " and ") {
			return k
		}
	}
	return len(tail) - 1
}

// collectDescription walks upward from just above the team line,
// prepending lines until a stop condition: the "projects" section
// header, a standalone heading, another team-looking line, or the
// accumulated length cap. Returns the joined description and the index
// where accumulation stopped, which doubles as the title line.
func collectDescription(tail []string, teamIdx int) (string, int) {
	var descLines []string
	total := 0
	k := teamIdx - 1
	for k >= 0 {
		ln := tail[k]
		if strings.EqualFold(ln, "projects") {
			break
		}
		if looksLikeHeading(ln) {
			break
		}
		if strings.Contains(ln, ",") && len(ln) <= maxInlineTeamLength {
			break
		}
		descLines = append([]string{ln}, descLines...)
		total += len(ln)
		if total > maxDescriptionLength {
			break
		}
		k--
	}
	if k < 0 {
		k = teamIdx - 1
		if k < 0 {
			k = 0
		}
	}
	if len(descLines) == 0 {
		return "", k
	}
	return textutil.CleanSpaces(strings.Join(descLines, " ")), k
}

// looksLikeHeading reports whether a line is a short standalone token
// with an uppercase initial, the shape of a project title heading.
func looksLikeHeading(ln string) bool {
	if len(ln) > maxHeadingLength {
		return false
	}
	fields := strings.Fields(ln)
	if len(fields) != 1 {
		return false
	}
	runes := []rune(ln)
	return len(runes) > 0 && unicode.IsUpper(runes[0])
}

// splitTitle separates a title line into project name and awards text.
// A run of two-or-more spaces is the strongest signal; otherwise an
// award keyword marks where the awards text begins.
func splitTitle(line string) (name string, awards string) {
	line = strings.TrimSpace(line)
	if before, after, ok := textutil.SplitAtGap(line); ok {
		return before, after
	}
	line = textutil.CleanSpaces(line)
	if loc := awardRegex.FindStringIndex(line); loc != nil {
		name = strings.TrimSpace(line[:loc[0]])
		name = strings.TrimSuffix(name, ",")
		return name, strings.TrimSpace(line[loc[0]:])
	}
	return line, ""
}

// resolveLink resolves site-relative hrefs against the year-specific
// origin.
func resolveLink(year int, href string) string {
	if strings.HasPrefix(href, "/") {
		return fmt.Sprintf("https://%d.lauzhack.com%s", year, href)
	}
	return href
}
