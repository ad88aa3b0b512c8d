package sqliteutil

import (
	"database/sql"
	"strings"
)

// OpenDB opens the sqlite database at path (":memory:" works) and
// applies the given schema. Re-applying a schema to an existing
// database is not an error.
func OpenDB(schema, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}
