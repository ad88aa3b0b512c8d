package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"lauzhack-dataset/lib/scrapers/event"
	"lauzhack-dataset/lib/scrapers/github"
	"lauzhack-dataset/lib/scrapers/projects"

	"github.com/stretchr/testify/require"
)

var exportRecords = []projects.Project{
	{
		Year:        2024,
		Name:        "EcoTrack",
		Awards:      "1st place",
		Description: "Tracks campus waste.",
		Team:        "Ada, Grace",
		Link:        "https://github.com/acme/ecotrack",
		Tags:        []string{"AWS", "Logitech"},
	},
	{
		Year: 2023,
		Name: "NightOwl",
		Link: "https://2023.lauzhack.com/projects/nightowl",
	},
}

func TestWriteProjectsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProjectsCSV(&buf, exportRecords))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"year", "name", "awards", "description", "team", "link", "tags"}, rows[0])
	require.Equal(t, "2024", rows[1][0])
	require.Equal(t, "AWS|Logitech", rows[1][6])
	require.Equal(t, "", rows[2][6])
}

func TestWriteEventsCSV(t *testing.T) {
	events := []event.Info{
		{
			Year:         2024,
			URL:          "https://2024.lauzhack.com",
			DateLine:     "30 November - 1 December 2024",
			LocationLine: "EPFL, Lausanne, Switzerland",
			Schedule: []event.ScheduleEntry{
				{Day: "Saturday", Time: "9:00-10:00", Item: "Check-in"},
			},
		},
		{Year: 2023, URL: "https://2023.lauzhack.com"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEventsCSV(&buf, events))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"year", "url", "date_line", "location_line", "schedule_json"}, rows[0])

	var schedule []event.ScheduleEntry
	require.NoError(t, json.Unmarshal([]byte(rows[1][4]), &schedule))
	require.Equal(t, events[0].Schedule, schedule)

	// a missing schedule serializes as an empty array, not null
	require.Equal(t, "[]", rows[2][4])
}

func TestWriteEnrichedCSV(t *testing.T) {
	profiles := map[string]github.RepoProfile{
		"https://github.com/acme/ecotrack": {
			Owner:             "acme",
			Repo:              "ecotrack",
			Stars:             42,
			Forks:             7,
			Language:          "Go",
			CreatedAt:         "2024-11-30T09:00:00Z",
			UpdatedAt:         "2024-12-01T18:00:00Z",
			FirstCommitDate:   "2024-11-30T09:12:00Z",
			LastCommitDate:    "2024-12-01T17:45:00Z",
			ContributorsCount: 4,
			Readme:            "# EcoTrack",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEnrichedCSV(&buf, exportRecords, profiles))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Len(t, rows[0], 16)

	require.Equal(t, "42", rows[1][7])
	require.Equal(t, "Go", rows[1][9])
	require.Equal(t, "4", rows[1][14])

	// NightOwl has no profile, all github columns stay blank
	for i := 7; i < 16; i++ {
		require.Equal(t, "", rows[2][i])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, exportRecords))

	var decoded []projects.Project
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, exportRecords, decoded)

	// html escaping is off so urls stay readable
	require.Contains(t, buf.String(), "https://github.com/acme/ecotrack")
}

func TestMergeByYear(t *testing.T) {
	events := []event.Info{
		{
			Year:         2024,
			DateLine:     "30 November - 1 December 2024",
			LocationLine: "EPFL, Lausanne, Switzerland",
		},
	}

	merged := MergeByYear(exportRecords, events)
	require.Len(t, merged, 2)

	require.Equal(t, "EcoTrack", merged[0].Name)
	require.Equal(t, "30 November - 1 December 2024", merged[0].EventDateLine)
	require.Equal(t, "EPFL, Lausanne, Switzerland", merged[0].EventLocationLine)

	require.Equal(t, "NightOwl", merged[1].Name)
	require.Equal(t, "", merged[1].EventDateLine)
}

func TestWriteSummary(t *testing.T) {
	profiles := map[string]github.RepoProfile{
		"https://github.com/acme/ecotrack": {Stars: 42, Forks: 7, ContributorsCount: 4, Language: "Go"},
		"https://github.com/acme/other":    {Stars: 3, Forks: 1, ContributorsCount: 2, Language: "Python"},
	}

	var buf bytes.Buffer
	WriteSummary(&buf, exportRecords, profiles)

	out := buf.String()
	require.Contains(t, out, "Total projects: 2")
	require.Contains(t, out, "Years covered: [2023 2024]")
	require.Contains(t, out, "  2024: 1\n")
	require.Contains(t, out, "  2023: 1\n")
	require.Contains(t, out, "Projects with awards: 1")
	require.Contains(t, out, "Projects with repository data: 2")
	require.Contains(t, out, "Total stars: 45")
	require.Contains(t, out, "Total forks: 8")
	require.Contains(t, out, "Total contributors: 6")
	require.Contains(t, out, "Top languages:")
	require.Contains(t, out, "  Go: 1\n")
	require.Contains(t, out, "  Python: 1\n")
	require.Contains(t, out, "EcoTrack")

	var empty bytes.Buffer
	WriteSummary(&empty, nil, nil)
	require.False(t, strings.Contains(empty.String(), "Total stars"))
}
