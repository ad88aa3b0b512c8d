package projects

import (
	"context"
	"regexp"
	"strings"

	"lauzhack-dataset/lib/htmlutil"
	"lauzhack-dataset/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

// the filter row usually reads like
// "Challenge any Bristol Myers Squibb AWS SBB Swisscom ..."
var challengeRegex = regexp.MustCompile(`(?i)\bChallenge\b`)
var anyTokenRegex = regexp.MustCompile(`(?i)\bany\b`)

// multi-word sponsor labels known to appear on the site, consumed
// before the remainder is split into single tokens
var multiWordTags = []string{
	"Bristol Myers Squibb",
	"EPFL Sustainability",
	"Open Systems",
}

var labelElements = map[string]bool{
	"button": true,
	"a":      true,
	"span":   true,
	"div":    true,
	"p":      true,
}

// ExtractTagVocabulary recovers the category labels advertised by the
// page's "Challenge" filter control. Pages without the control yield an
// empty vocabulary, never an error.
func ExtractTagVocabulary(ctx context.Context, doc *goquery.Document) []string {
	ctx, span := tracer.Start(ctx, "ExtractTagVocabulary")
	defer span.End()

	vocab := []string{}

	container := findChallengeContainer(doc)
	if container == nil {
		span.AddEvent("no challenge control found")
		return vocab
	}

	var labels []string
	collectLabels(container, &labels)

	joined := strings.Join(labels, " ")
	joined = challengeRegex.ReplaceAllString(joined, " ")
	joined = anyTokenRegex.ReplaceAllString(joined, " ")
	joined = textutil.CleanSpaces(joined)

	var found []string
	remainder := joined
	for _, m := range multiWordTags {
		if strings.Contains(remainder, m) {
			found = append(found, m)
			remainder = strings.ReplaceAll(remainder, m, " ")
		}
	}

	seen := map[string]bool{}
	for _, label := range append(found, strings.Fields(remainder)...) {
		label = textutil.CleanSpaces(label)
		if label == "" {
			continue
		}
		lower := strings.ToLower(label)
		if lower == "challenge" || lower == "any" {
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true
		vocab = append(vocab, label)
	}

	span.SetAttributes(attribute.StringSlice("vocabulary", vocab))
	return vocab
}

// findChallengeContainer locates the first text node mentioning the
// filter control's label and returns its enclosing container node.
func findChallengeContainer(doc *goquery.Document) *html.Node {
	var textNode *html.Node
	for _, root := range doc.Nodes {
		walkNodes(root, func(n *html.Node) {
			if textNode == nil && n.Type == html.TextNode && challengeRegex.MatchString(n.Data) {
				textNode = n
			}
		})
		if textNode != nil {
			break
		}
	}
	if textNode == nil || textNode.Parent == nil {
		return nil
	}
	if textNode.Parent.Parent != nil {
		return textNode.Parent.Parent
	}
	return textNode.Parent
}

// collectLabels gathers short label-like text fragments from
// interactive and text elements inside the candidate region. Long
// fragments are paragraphs, not labels.
func collectLabels(container *html.Node, labels *[]string) {
	walkNodes(container, func(n *html.Node) {
		if n.Type != html.ElementNode || !labelElements[n.Data] {
			return
		}
		t := textutil.CleanSpaces(htmlutil.GetText(n))
		if t == "" || len(t) > 40 {
			return
		}
		*labels = append(*labels, t)
	})
}

func walkNodes(node *html.Node, visit func(*html.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkNodes(child, visit)
	}
}

// MatchTags returns the subset of the vocabulary occurring in text as
// whole-word matches, in vocabulary order, without duplicates. An empty
// vocabulary yields an empty result.
func MatchTags(text string, vocab []string) []string {
	if len(vocab) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var tags []string
	for _, tag := range vocab {
		lower := strings.ToLower(tag)
		if seen[lower] {
			continue
		}
		if textutil.ContainsWord(text, tag) {
			seen[lower] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
