package dataset

import (
	"lauzhack-dataset/lib/scrapers/event"
	"lauzhack-dataset/lib/scrapers/projects"
)

type MergedProject struct {
	projects.Project
	EventDateLine     string `json:"event_date_line"`
	EventLocationLine string `json:"event_location_line"`
}

// MergeByYear joins every project with its year's event info
// (many-to-one). Projects from years without event info keep blank
// event columns.
func MergeByYear(records []projects.Project, events []event.Info) []MergedProject {
	byYear := map[int]event.Info{}
	for _, info := range events {
		byYear[info.Year] = info
	}

	merged := make([]MergedProject, 0, len(records))
	for _, p := range records {
		row := MergedProject{Project: p}
		if info, ok := byYear[p.Year]; ok {
			row.EventDateLine = info.DateLine
			row.EventLocationLine = info.LocationLine
		}
		merged = append(merged, row)
	}
	return merged
}
