package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// VisibleLines flattens a selection into the trimmed text of every
// visible text node, in document order. Script and style contents are
// skipped, as are whitespace-only nodes.
func VisibleLines(sel *goquery.Selection) []string {
	var lines []string
	for _, n := range sel.Nodes {
		visibleLinesRecursive(n, &lines)
	}
	return lines
}

func visibleLinesRecursive(node *html.Node, lines *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.ElementNode {
		switch node.Data {
		case "script", "style", "noscript", "template":
			return
		}
	}
	if node.Type == html.TextNode {
		line := strings.TrimSpace(node.Data)
		if line != "" {
			*lines = append(*lines, line)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		visibleLinesRecursive(child, lines)
		child = child.NextSibling
	}
}

// Content returns the element most likely to hold the page's primary
// content: <main> if present, then <body>, then the whole document.
func Content(doc *goquery.Document) *goquery.Selection {
	if main := doc.Find("main"); main.Length() > 0 {
		return main.First()
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}
