package dataset

import (
	"fmt"
	"io"
	"sort"

	"lauzhack-dataset/lib/scrapers/github"
	"lauzhack-dataset/lib/scrapers/projects"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteSummary prints run statistics: totals, per-year counts, awarded
// projects, aggregate repository numbers, the most common languages and
// the most starred enriched repositories.
func WriteSummary(w io.Writer, records []projects.Project, profiles map[string]github.RepoProfile) {
	perYear := map[int]int{}
	awarded := 0
	for _, p := range records {
		perYear[p.Year]++
		if p.Awards != "" {
			awarded++
		}
	}
	sortedYears := make([]int, 0, len(perYear))
	for y := range perYear {
		sortedYears = append(sortedYears, y)
	}
	sort.Ints(sortedYears)

	fmt.Fprintf(w, "Total projects: %d\n", len(records))
	fmt.Fprintf(w, "Years covered: %v\n", sortedYears)
	for _, y := range sortedYears {
		fmt.Fprintf(w, "  %d: %d\n", y, perYear[y])
	}
	fmt.Fprintf(w, "Projects with awards: %d\n", awarded)
	fmt.Fprintf(w, "Projects with repository data: %d\n", len(profiles))

	if len(profiles) == 0 {
		return
	}

	totalStars := 0
	totalForks := 0
	totalContributors := 0
	languageCounts := map[string]int{}
	for _, profile := range profiles {
		totalStars += profile.Stars
		totalForks += profile.Forks
		totalContributors += profile.ContributorsCount
		if profile.Language != "" {
			languageCounts[profile.Language]++
		}
	}
	fmt.Fprintf(w, "Total stars: %d\n", totalStars)
	fmt.Fprintf(w, "Total forks: %d\n", totalForks)
	fmt.Fprintf(w, "Total contributors: %d\n", totalContributors)

	languages := make([]string, 0, len(languageCounts))
	for lang := range languageCounts {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool {
		if languageCounts[languages[i]] != languageCounts[languages[j]] {
			return languageCounts[languages[i]] > languageCounts[languages[j]]
		}
		return languages[i] < languages[j]
	})
	if len(languages) > 5 {
		languages = languages[:5]
	}
	fmt.Fprintln(w, "Top languages:")
	for _, lang := range languages {
		fmt.Fprintf(w, "  %s: %d\n", lang, languageCounts[lang])
	}

	type starred struct {
		name    string
		profile github.RepoProfile
	}
	var rows []starred
	for _, p := range records {
		if profile, ok := profiles[p.Link]; ok {
			rows = append(rows, starred{name: p.Name, profile: profile})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].profile.Stars > rows[j].profile.Stars
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Project", "Stars", "Contributors", "Language"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.name, r.profile.Stars, r.profile.ContributorsCount, r.profile.Language})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
