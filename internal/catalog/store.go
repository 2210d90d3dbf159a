package catalog

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Fingerprint identifies one version of a dat file on disk.
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime int64 // Unix nanoseconds.
}

// FingerprintOf stats path.
func FingerprintOf(path string) (Fingerprint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Fingerprint{}, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Fingerprint{}, fmt.Errorf("dat file %s: %w", path, ErrNotFound)
		}
		return Fingerprint{}, err
	}
	return Fingerprint{Path: abs, Size: fi.Size(), ModTime: fi.ModTime().UnixNano()}, nil
}

// Store caches parsed catalogs in a SQLite database so large dat files are
// parsed once per change rather than once per run.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the cache database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached catalog for fp. ok is false when nothing is cached
// or the cached copy was taken from a different version of the file.
func (s *Store) Get(fp Fingerprint) (c *Catalog, ok bool, err error) {
	var size, modTime int64
	err = s.db.QueryRow(
		"SELECT size, mod_time FROM sources WHERE path = ?", fp.Path,
	).Scan(&size, &modTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find cached source: %w", err)
	}
	if size != fp.Size || modTime != fp.ModTime {
		return nil, false, nil
	}

	samples, err := s.loadSamples(fp.Path)
	if err != nil {
		return nil, false, err
	}

	rows, err := s.db.Query(`
		SELECT seq, name, cloneof, romof, sampleof, isbios, year, description, manufacturer, comment
		FROM entries WHERE source = ? ORDER BY seq`, fp.Path)
	if err != nil {
		return nil, false, fmt.Errorf("list cached entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			seq    int64
			e      Entry
			isBIOS int
			year   sql.NullString
			desc   sql.NullString
			manuf  sql.NullString
			comm   sql.NullString
		)
		if err := rows.Scan(&seq, &e.Name, &e.CloneOf, &e.RomOf, &e.SampleOf, &isBIOS,
			&year, &desc, &manuf, &comm); err != nil {
			return nil, false, fmt.Errorf("scan cached entry: %w", err)
		}
		e.IsBIOS = isBIOS != 0
		for _, f := range []struct {
			field Field
			v     sql.NullString
		}{
			{FieldYear, year},
			{FieldDescription, desc},
			{FieldManufacturer, manuf},
			{FieldComment, comm},
		} {
			if f.v.Valid {
				e.set(f.field, f.v.String)
			}
		}
		e.Samples = samples[seq]
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate cached entries: %w", err)
	}
	return New(entries), true, nil
}

func (s *Store) loadSamples(source string) (map[int64][]string, error) {
	rows, err := s.db.Query(
		"SELECT seq, name FROM samples WHERE source = ? ORDER BY seq, pos", source)
	if err != nil {
		return nil, fmt.Errorf("list cached samples: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var seq int64
		var name string
		if err := rows.Scan(&seq, &name); err != nil {
			return nil, fmt.Errorf("scan cached sample: %w", err)
		}
		out[seq] = append(out[seq], name)
	}
	return out, rows.Err()
}

// Put replaces the cached copy for fp.Path with c.
func (s *Store) Put(fp Fingerprint, c *Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache update: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM sources WHERE path = ?",
		"DELETE FROM entries WHERE source = ?",
		"DELETE FROM samples WHERE source = ?",
	} {
		if _, err := tx.Exec(q, fp.Path); err != nil {
			return fmt.Errorf("clear cached source: %w", err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO sources (path, size, mod_time, loaded_at) VALUES (?, ?, ?, ?)",
		fp.Path, fp.Size, fp.ModTime, time.Now(),
	); err != nil {
		return fmt.Errorf("insert cached source: %w", err)
	}

	entryStmt, err := tx.Prepare(`
		INSERT INTO entries (source, seq, name, cloneof, romof, sampleof, isbios, year, description, manufacturer, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer entryStmt.Close()

	sampleStmt, err := tx.Prepare(
		"INSERT INTO samples (source, seq, pos, name) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer sampleStmt.Close()

	for seq, e := range c.entries {
		isBIOS := 0
		if e.IsBIOS {
			isBIOS = 1
		}
		if _, err := entryStmt.Exec(fp.Path, seq, e.Name, e.CloneOf, e.RomOf, e.SampleOf, isBIOS,
			nullable(e, FieldYear), nullable(e, FieldDescription),
			nullable(e, FieldManufacturer), nullable(e, FieldComment),
		); err != nil {
			return fmt.Errorf("insert cached entry %s: %w", e.Name, err)
		}
		for pos, name := range e.Samples {
			if _, err := sampleStmt.Exec(fp.Path, seq, pos, name); err != nil {
				return fmt.Errorf("insert cached sample %s: %w", name, err)
			}
		}
	}
	return tx.Commit()
}

func nullable(e Entry, f Field) sql.NullString {
	v, ok := e.Attribute(f)
	return sql.NullString{String: v, Valid: ok}
}

// LoadCached returns the catalog for datPath, served from the cache at
// cachePath when it matches the file on disk and refreshed otherwise.
// hit reports whether the cache was used.
func LoadCached(datPath, cachePath string) (c *Catalog, hit bool, err error) {
	fp, err := FingerprintOf(datPath)
	if err != nil {
		return nil, false, err
	}
	s, err := OpenStore(cachePath)
	if err != nil {
		return nil, false, err
	}
	defer s.Close()

	c, hit, err = s.Get(fp)
	if err != nil || hit {
		return c, hit, err
	}
	c, err = Load(datPath)
	if err != nil {
		return nil, false, err
	}
	if err := s.Put(fp, c); err != nil {
		return nil, false, err
	}
	return c, false, nil
}
