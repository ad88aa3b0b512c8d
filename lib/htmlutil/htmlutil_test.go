package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDocument(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestGetText(t *testing.T) {
	doc := parseDocument(t, `<html><body><p>hello <b>there</b></p></body></html>`)
	require.Equal(t, "hello there", GetText(doc.Find("p").Nodes[0]))
}

func TestVisibleLines(t *testing.T) {
	doc := parseDocument(t, `<html><body><main>
		<h1>Title</h1>
		<script>var hidden = 1;</script>
		<style>.hidden {}</style>
		<p>  first  </p>
		<p></p>
		<div><span>second</span></div>
	</main></body></html>`)

	require.Equal(t, []string{"Title", "first", "second"}, VisibleLines(doc.Find("main")))
}

func TestContent(t *testing.T) {
	doc := parseDocument(t, `<html><body><p>noise</p><main><p>core</p></main></body></html>`)
	require.True(t, doc.Find("main").First().Nodes[0] == Content(doc).Nodes[0])

	doc = parseDocument(t, `<html><body><p>core</p></body></html>`)
	require.True(t, doc.Find("body").First().Nodes[0] == Content(doc).Nodes[0])
}
