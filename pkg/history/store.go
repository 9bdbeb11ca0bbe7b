// Package history keeps a local record of descriptor revisions and builds
// in a SQLite database, so that cross-revision consistency of package
// metadata can be audited later.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Actions recorded against a package revision.
const (
	ActionSnapshot = "snapshot"
	ActionNew      = "new"
	ActionBump     = "bump"
	ActionBuild    = "build"
)

// Revision is one recorded state of a package descriptor.
type Revision struct {
	ID           int64
	Dir          string // workspace directory name
	Name         string // descriptor name at the time of recording
	Version      string
	ScriptsCount int
	Requires     []string // dependency set at the time of recording
	Action       string
	CreatedAt    time.Time
}

// Build is one recorded artifact build.
type Build struct {
	ID        string // uuid
	Name      string
	Version   string
	Artifact  string
	SHA256    string
	CreatedAt time.Time
}

// Store wraps the SQLite history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS revisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dir TEXT NOT NULL,
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	scripts_count INTEGER NOT NULL,
	requires TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_revisions_dir ON revisions(dir, id);

CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	artifact TEXT NOT NULL,
	sha256 TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_builds_name ON builds(name, created_at);
`

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// A local single-user store; one connection avoids SQLITE_BUSY surprises.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRevision appends a revision row. CreatedAt defaults to now.
func (s *Store) RecordRevision(rev Revision) error {
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO revisions (dir, name, version, scripts_count, requires, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rev.Dir, rev.Name, rev.Version, rev.ScriptsCount,
		strings.Join(rev.Requires, ","), rev.Action,
		rev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record revision for %s: %w", rev.Dir, err)
	}
	return nil
}

// Revisions returns all recorded revisions for a workspace directory,
// oldest first.
func (s *Store) Revisions(dir string) ([]Revision, error) {
	rows, err := s.db.Query(
		`SELECT id, dir, name, version, scripts_count, requires, action, created_at
		 FROM revisions WHERE dir = ? ORDER BY id`, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var rev Revision
		var created, requires string
		if err := rows.Scan(&rev.ID, &rev.Dir, &rev.Name, &rev.Version,
			&rev.ScriptsCount, &requires, &rev.Action, &created); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		if requires != "" {
			rev.Requires = strings.Split(requires, ",")
		}
		rev.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revision timestamp: %w", err)
		}
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

// Dirs returns every workspace directory that has recorded revisions.
func (s *Store) Dirs() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT dir FROM revisions ORDER BY dir`)
	if err != nil {
		return nil, fmt.Errorf("failed to query directories: %w", err)
	}
	defer rows.Close()

	var dirs []string
	for rows.Next() {
		var dir string
		if err := rows.Scan(&dir); err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
		dirs = append(dirs, dir)
	}
	return dirs, rows.Err()
}

// RecordBuild appends a build row. CreatedAt defaults to now.
func (s *Store) RecordBuild(b Build) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO builds (id, name, version, artifact, sha256, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Version, b.Artifact, b.SHA256,
		b.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record build %s: %w", b.ID, err)
	}
	return nil
}

// Builds returns all recorded builds for a package name, oldest first.
func (s *Store) Builds(name string) ([]Build, error) {
	rows, err := s.db.Query(
		`SELECT id, name, version, artifact, sha256, created_at
		 FROM builds WHERE name = ? ORDER BY created_at`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		var created string
		if err := rows.Scan(&b.ID, &b.Name, &b.Version, &b.Artifact, &b.SHA256, &created); err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		b.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("failed to parse build timestamp: %w", err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
