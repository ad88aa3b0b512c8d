// Package projects recovers structured project records from rendered
// hackathon listing pages. The pages carry no usable schema, so
// everything here is a best-effort heuristic over visible text:
// extraction degrades to partial or empty results, it never fails the
// caller.
package projects

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lauzhack-dataset/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("scrapers/projects")

type Project struct {
	Year        int      `json:"year"`
	Name        string   `json:"name"`
	Awards      string   `json:"awards"`
	Description string   `json:"description"`
	Team        string   `json:"team"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
}

// ParseProjects extracts every project record advertised by a listing
// page. Records sharing (year, lowercased name, link) are collapsed to
// the first occurrence.
func ParseProjects(ctx context.Context, year int, doc *goquery.Document) []Project {
	ctx, span := tracer.Start(ctx, "ParseProjects")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	main := htmlutil.Content(doc)
	vocab := ExtractTagVocabulary(ctx, doc)

	hrefs := discoverBoundaries(ctx, main)
	text := strings.Join(htmlutil.VisibleLines(main), "\n")
	blocks := splitBlocks(text)

	var records []Project
	for i, href := range hrefs {
		p, ok := parseBlock(year, blocks[i], href, vocab)
		if !ok {
			continue
		}
		records = append(records, p)
	}

	records = Dedup(records)
	slog.DebugContext(
		ctx, "parsed project listing",
		"year", year,
		"links", len(hrefs),
		"projects", len(records),
	)
	span.SetAttributes(
		attribute.Int("links", len(hrefs)),
		attribute.Int("projects", len(records)),
	)
	return records
}

// Dedup drops later records sharing (year, lowercased name, link) with
// an earlier one. Running it on its own output is a no-op.
func Dedup(records []Project) []Project {
	seen := map[string]bool{}
	var uniq []Project
	for _, p := range records {
		key := fmt.Sprintf("%d\x00%s\x00%s", p.Year, strings.ToLower(p.Name), p.Link)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, p)
	}
	return uniq
}
