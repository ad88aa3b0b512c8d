// Package dataset persists and exports the scraped records. It is a
// collaborator of the scrapers: everything here consumes finished
// records, nothing feeds back into extraction.
package dataset

import (
	"context"
	"database/sql"
	"strings"

	"lauzhack-dataset/lib/scrapers/event"
	"lauzhack-dataset/lib/scrapers/github"
	"lauzhack-dataset/lib/scrapers/projects"
)

// stable separator for list-valued fields in tabular outputs
const tagSeparator = "|"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

func (s Store) SaveProjects(ctx context.Context, records []projects.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range records {
		_, err := tx.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO projects (year, name, awards, description, team, link, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Year, p.Name, p.Awards, p.Description, p.Team, p.Link,
			strings.Join(p.Tags, tagSeparator),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) Projects(ctx context.Context) ([]projects.Project, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT year, name, awards, description, team, link, tags
		FROM projects ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []projects.Project
	for rows.Next() {
		var p projects.Project
		var tags string
		err := rows.Scan(&p.Year, &p.Name, &p.Awards, &p.Description, &p.Team, &p.Link, &tags)
		if err != nil {
			return nil, err
		}
		if tags != "" {
			p.Tags = strings.Split(tags, tagSeparator)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GithubLinks returns the distinct github.com project links in
// insertion order.
func (s Store) GithubLinks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT link FROM projects
		WHERE link LIKE '%github.com%'
		GROUP BY link ORDER BY min(rowid)`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (s Store) SaveEvents(ctx context.Context, events []event.Info) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, info := range events {
		_, err := tx.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO events (year, url, date_line, location_line)
			VALUES (?, ?, ?, ?)`,
			info.Year, info.URL, info.DateLine, info.LocationLine,
		)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE year = ?`, info.Year)
		if err != nil {
			return err
		}
		for i, entry := range info.Schedule {
			_, err := tx.ExecContext(
				ctx,
				`INSERT INTO schedule_entries (year, idx, day, time, item)
				VALUES (?, ?, ?, ?, ?)`,
				info.Year, i, entry.Day, entry.Time, entry.Item,
			)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (s Store) Events(ctx context.Context) ([]event.Info, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT year, url, date_line, location_line FROM events ORDER BY year`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []event.Info
	for rows.Next() {
		var info event.Info
		err := rows.Scan(&info.Year, &info.URL, &info.DateLine, &info.LocationLine)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		schedule, err := s.schedule(ctx, out[i].Year)
		if err != nil {
			return nil, err
		}
		out[i].Schedule = schedule
	}
	return out, nil
}

func (s Store) schedule(ctx context.Context, year int) ([]event.ScheduleEntry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT day, time, item FROM schedule_entries WHERE year = ? ORDER BY idx`,
		year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedule []event.ScheduleEntry
	for rows.Next() {
		var entry event.ScheduleEntry
		if err := rows.Scan(&entry.Day, &entry.Time, &entry.Item); err != nil {
			return nil, err
		}
		schedule = append(schedule, entry)
	}
	return schedule, rows.Err()
}

func (s Store) SaveProfiles(ctx context.Context, profiles map[string]github.RepoProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for link, p := range profiles {
		_, err := tx.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO repo_profiles (
				link, owner, repo, stars, forks, language, description, url,
				created_at, updated_at, first_commit_date, last_commit_date,
				contributors_count, readme
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			link, p.Owner, p.Repo, p.Stars, p.Forks, p.Language, p.Description,
			p.URL, p.CreatedAt, p.UpdatedAt, p.FirstCommitDate, p.LastCommitDate,
			p.ContributorsCount, p.Readme,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) Profiles(ctx context.Context) (map[string]github.RepoProfile, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT link, owner, repo, stars, forks, language, description, url,
			created_at, updated_at, first_commit_date, last_commit_date,
			contributors_count, readme
		FROM repo_profiles`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]github.RepoProfile{}
	for rows.Next() {
		var link string
		var p github.RepoProfile
		err := rows.Scan(
			&link, &p.Owner, &p.Repo, &p.Stars, &p.Forks, &p.Language,
			&p.Description, &p.URL, &p.CreatedAt, &p.UpdatedAt,
			&p.FirstCommitDate, &p.LastCommitDate, &p.ContributorsCount, &p.Readme,
		)
		if err != nil {
			return nil, err
		}
		out[link] = p
	}
	return out, rows.Err()
}
