// Package migrations creates and upgrades the SQLite schema from the
// numbered SQL files embedded below.
package migrations

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Migration is one numbered schema change
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// RunMigrations applies every migration not yet recorded in the migrations
// table, lowest version first. Each runs in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	pending, err := LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, m := range pending {
		if applied[m.Version] {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// LoadMigrations returns the embedded migrations sorted by version. Every
// up file needs a matching down file.
func LoadMigrations() ([]Migration, error) {
	ups, err := fs.Glob(migrationsFS, "*"+upSuffix)
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(ups))
	for _, file := range ups {
		version, name, ok := parseFilename(file)
		if !ok {
			continue
		}
		up, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return nil, err
		}
		down, err := fs.ReadFile(migrationsFS, strings.TrimSuffix(file, upSuffix)+downSuffix)
		if err != nil {
			return nil, fmt.Errorf("missing down migration for %s: %w", file, err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return migrations, nil
}

// AppliedVersions returns the versions recorded in the migrations table
func AppliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (version) VALUES (?)", m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

// parseFilename splits "000001_create_kv_entries.up.sql" into 1 and
// "create_kv_entries". Files without a positive numeric prefix are skipped.
func parseFilename(file string) (int, string, bool) {
	prefix, rest, found := strings.Cut(strings.TrimSuffix(file, upSuffix), "_")
	if !found {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, rest, true
}
