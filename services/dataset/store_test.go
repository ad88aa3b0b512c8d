package dataset

import (
	"context"
	"testing"

	"lauzhack-dataset/lib/scrapers/event"
	"lauzhack-dataset/lib/scrapers/github"
	"lauzhack-dataset/lib/scrapers/projects"
	"lauzhack-dataset/lib/sqliteutil"
	"lauzhack-dataset/services/dataset/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	database, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestProjectsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []projects.Project{
		{
			Year:        2024,
			Name:        "EcoTrack",
			Awards:      "1st place",
			Description: "Tracks campus waste in real time.",
			Team:        "Ada, Grace and Edsger",
			Link:        "https://github.com/acme/ecotrack",
			Tags:        []string{"AWS", "Logitech"},
		},
		{
			Year: 2023,
			Name: "NightOwl",
			Link: "https://2023.lauzhack.com/projects/nightowl",
		},
	}

	require.NoError(t, store.SaveProjects(ctx, records))

	got, err := store.Projects(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestProjectsReplaceOnConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := projects.Project{Year: 2024, Name: "EcoTrack", Link: "https://github.com/acme/ecotrack"}
	updated := first
	updated.Awards = "winner"

	require.NoError(t, store.SaveProjects(ctx, []projects.Project{first}))
	require.NoError(t, store.SaveProjects(ctx, []projects.Project{updated}))

	got, err := store.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "winner", got[0].Awards)
}

func TestGithubLinks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveProjects(ctx, []projects.Project{
		{Year: 2024, Name: "A", Link: "https://github.com/acme/a"},
		{Year: 2024, Name: "B", Link: "https://2024.lauzhack.com/projects/b"},
		{Year: 2023, Name: "C", Link: "https://github.com/acme/c"},
		{Year: 2023, Name: "D", Link: "https://github.com/acme/a"},
	})
	require.NoError(t, err)

	links, err := store.GithubLinks(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://github.com/acme/a",
		"https://github.com/acme/c",
	}, links)
}

func TestEventsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events := []event.Info{
		{
			Year:         2024,
			URL:          "https://2024.lauzhack.com",
			DateLine:     "30 November - 1 December 2024",
			LocationLine: "EPFL, Lausanne, Switzerland",
			Schedule: []event.ScheduleEntry{
				{Day: "Saturday", Time: "9:00-10:00", Item: "Check-in"},
				{Day: "Saturday", Time: "10:00-11:00", Item: "Opening ceremony"},
			},
		},
		{
			Year: 2023,
			URL:  "https://2023.lauzhack.com",
		},
	}

	require.NoError(t, store.SaveEvents(ctx, events))

	got, err := store.Events(ctx)
	require.NoError(t, err)
	// rows come back ordered by year
	want := []event.Info{events[1], events[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestSaveEventsReplacesSchedule(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	info := event.Info{
		Year: 2024,
		URL:  "https://2024.lauzhack.com",
		Schedule: []event.ScheduleEntry{
			{Day: "Saturday", Time: "9:00-10:00", Item: "Check-in"},
		},
	}
	require.NoError(t, store.SaveEvents(ctx, []event.Info{info}))

	info.Schedule = []event.ScheduleEntry{
		{Day: "Sunday", Time: "14:00-15:00", Item: "Judging"},
	}
	require.NoError(t, store.SaveEvents(ctx, []event.Info{info}))

	got, err := store.Events(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, info.Schedule, got[0].Schedule)
}

func TestProfilesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profiles := map[string]github.RepoProfile{
		"https://github.com/acme/ecotrack": {
			Owner:             "acme",
			Repo:              "ecotrack",
			Stars:             42,
			Forks:             7,
			Language:          "Go",
			Description:       "waste tracker",
			URL:               "https://github.com/acme/ecotrack",
			CreatedAt:         "2024-11-30T09:00:00Z",
			UpdatedAt:         "2024-12-01T18:00:00Z",
			FirstCommitDate:   "2024-11-30T09:12:00Z",
			LastCommitDate:    "2024-12-01T17:45:00Z",
			ContributorsCount: 4,
			Readme:            "# EcoTrack",
		},
	}

	require.NoError(t, store.SaveProfiles(ctx, profiles))

	got, err := store.Profiles(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(profiles, got); diff != "" {
		t.Fatal(diff)
	}
}
