package dataset

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"lauzhack-dataset/lib/scrapers/event"
	"lauzhack-dataset/lib/scrapers/github"
	"lauzhack-dataset/lib/scrapers/projects"
)

func WriteProjectsCSV(w io.Writer, records []projects.Project) error {
	out := csv.NewWriter(w)
	err := out.Write([]string{"year", "name", "awards", "description", "team", "link", "tags"})
	if err != nil {
		return err
	}
	for _, p := range records {
		err := out.Write([]string{
			strconv.Itoa(p.Year),
			p.Name,
			p.Awards,
			p.Description,
			p.Team,
			p.Link,
			strings.Join(p.Tags, tagSeparator),
		})
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func WriteEventsCSV(w io.Writer, events []event.Info) error {
	out := csv.NewWriter(w)
	err := out.Write([]string{"year", "url", "date_line", "location_line", "schedule_json"})
	if err != nil {
		return err
	}
	for _, info := range events {
		schedule := info.Schedule
		if schedule == nil {
			schedule = []event.ScheduleEntry{}
		}
		scheduleJSON, err := json.Marshal(schedule)
		if err != nil {
			return err
		}
		err = out.Write([]string{
			strconv.Itoa(info.Year),
			info.URL,
			info.DateLine,
			info.LocationLine,
			string(scheduleJSON),
		})
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// WriteEnrichedCSV writes the projects table joined with repository
// profiles on the project link. Projects without a profile get blank
// github columns.
func WriteEnrichedCSV(w io.Writer, records []projects.Project, profiles map[string]github.RepoProfile) error {
	out := csv.NewWriter(w)
	err := out.Write([]string{
		"year", "name", "awards", "description", "team", "link", "tags",
		"github_stars", "github_forks", "github_language", "github_created_at",
		"github_updated_at", "github_first_commit", "github_last_commit",
		"github_contributors", "github_readme",
	})
	if err != nil {
		return err
	}
	for _, p := range records {
		row := []string{
			strconv.Itoa(p.Year),
			p.Name,
			p.Awards,
			p.Description,
			p.Team,
			p.Link,
			strings.Join(p.Tags, tagSeparator),
			"", "", "", "", "", "", "", "", "",
		}
		if profile, ok := profiles[p.Link]; ok {
			row[7] = strconv.Itoa(profile.Stars)
			row[8] = strconv.Itoa(profile.Forks)
			row[9] = profile.Language
			row[10] = profile.CreatedAt
			row[11] = profile.UpdatedAt
			row[12] = profile.FirstCommitDate
			row[13] = profile.LastCommitDate
			row[14] = strconv.Itoa(profile.ContributorsCount)
			row[15] = profile.Readme
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
