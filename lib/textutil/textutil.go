package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var gapRegex = regexp.MustCompile(`\s{2,}`)

// CleanSpaces collapses all runs of whitespace into single spaces and
// trims the ends.
func CleanSpaces(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

// ContainsWord reports whether needle occurs in haystack delimited by
// word boundaries. Matching is case-insensitive; needles containing
// spaces are matched as a whole phrase.
func ContainsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(needle) + `\b`)
	if err != nil {
		return false
	}
	return pattern.MatchString(haystack)
}

// SplitAtGap splits a line at the first run of two-or-more consecutive
// spaces. Returns the line unchanged and ok=false when no gap exists.
func SplitAtGap(line string) (before string, after string, ok bool) {
	loc := gapRegex.FindStringIndex(line)
	if loc == nil {
		return line, "", false
	}
	return strings.TrimSpace(line[:loc[0]]), CleanSpaces(line[loc[1]:]), true
}
