// Package event recovers event-level facts (dates, location, schedule)
// from a hackathon home page. Like the listing scraper this is a
// best-effort pass over visible text: missing pieces come back empty.
package event

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"lauzhack-dataset/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("scrapers/event")

type ScheduleEntry struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	Item string `json:"item"`
}

type Info struct {
	Year         int             `json:"year"`
	URL          string          `json:"url"`
	DateLine     string          `json:"date_line"`
	LocationLine string          `json:"location_line"`
	Schedule     []ScheduleEntry `json:"schedule"`
}

const (
	dateLineWindow     = 40
	locationLineWindow = 80
)

var monthRegex = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\b`)
var locationRegex = regexp.MustCompile(`(?i)\b(EPFL|Lausanne|Switzerland|campus)\b`)
var timeItemRegex = regexp.MustCompile(`^(\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2})\s+(.*)$`)

var dayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// ParseHomePage recovers the date line, location line and day-by-day
// schedule from an event home page.
func ParseHomePage(ctx context.Context, year int, url string, doc *goquery.Document) Info {
	ctx, span := tracer.Start(ctx, "ParseHomePage")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year), attribute.String("url", url))

	lines := htmlutil.VisibleLines(htmlutil.Content(doc))

	info := Info{
		Year:         year,
		URL:          url,
		DateLine:     firstMatch(lines, dateLineWindow, monthRegex),
		LocationLine: firstMatch(lines, locationLineWindow, locationRegex),
		Schedule:     parseSchedule(lines),
	}

	slog.DebugContext(
		ctx, "parsed event home page",
		"year", year,
		"date_line", info.DateLine,
		"location_line", info.LocationLine,
		"schedule_entries", len(info.Schedule),
	)
	return info
}

func firstMatch(lines []string, window int, pattern *regexp.Regexp) string {
	if len(lines) > window {
		lines = lines[:window]
	}
	for _, ln := range lines {
		if pattern.MatchString(ln) {
			return ln
		}
	}
	return ""
}

// parseSchedule keeps a current-day cursor set by day-name headings;
// every H:MM-H:MM line that follows one is an entry for that day.
// Time lines before any day heading are not scheduled.
func parseSchedule(lines []string) []ScheduleEntry {
	var schedule []ScheduleEntry
	currentDay := ""
	for _, ln := range lines {
		if dayNames[strings.ToLower(ln)] {
			currentDay = ln
			continue
		}
		if currentDay == "" {
			continue
		}
		m := timeItemRegex.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		schedule = append(schedule, ScheduleEntry{
			Day:  currentDay,
			Time: strings.ReplaceAll(strings.ReplaceAll(m[1], " ", ""), "\t", ""),
			Item: strings.TrimSpace(m[2]),
		})
	}
	return schedule
}
