// Package catalog is K2's control-plane metadata store: the sqlite-backed
// registry of collections and their schema versions that every node
// consults before it can make sense of a partition's records. It is
// grounded on the same open/schema-versioning shape as margaret's
// log sqlite backend, adapted from an append-only log of
// arbitrary codec values to a keyed table of mpack-encoded Schema
// records addressed by collection name and version.
package catalog

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ccjeff/chogori-platform/mpack"
)

const schemaVersion1 = `
CREATE TABLE collections (
	name TEXT PRIMARY KEY
);
CREATE TABLE schemas (
	collection TEXT NOT NULL,
	version    INTEGER NOT NULL,
	data       BLOB NOT NULL,
	PRIMARY KEY (collection, version),
	FOREIGN KEY (collection) REFERENCES collections(name)
);
PRAGMA user_version = 1;
`

// ErrNotFound is returned when a collection or schema version does not
// exist in the catalog.
var ErrNotFound = errors.New("catalog: not found")

// ErrAlreadyExists is returned by CreateCollection when the collection
// name is already registered.
var ErrAlreadyExists = errors.New("catalog: already exists")

// Store is the catalog's sqlite-backed handle. It is safe for concurrent
// use by multiple goroutines, the same guarantee database/sql itself
// gives its *DB.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a catalog database at path,
// applying the schema if this is a fresh file.
func Open(path string) (*Store, error) {
	s, err := os.Stat(path)
	if os.IsNotExist(err) {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, errors.Wrap(err, "catalog: failed to create parent directory")
			}
		}
	} else if err != nil {
		return nil, errors.Wrap(err, "catalog: failed to stat path")
	} else if s.IsDir() {
		path = filepath.Join(path, "catalog.db")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: failed to open sqlite file %s", path)
	}

	var version int
	err = db.QueryRow(`PRAGMA user_version`).Scan(&version)
	if err == sql.ErrNoRows || version == 0 {
		if _, err := db.Exec(schemaVersion1); err != nil {
			return nil, errors.Wrap(err, "catalog: failed to init schema v1")
		}
	} else if err != nil {
		return nil, errors.Wrapf(err, "catalog: schema version lookup failed for %s", path)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// CreateCollection registers a new, schema-less collection name. Adding
// the first schema version happens separately, through PutSchema.
func (s *Store) CreateCollection(name string) error {
	_, err := s.db.Exec(`INSERT INTO collections (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueConstraint(err) {
			return ErrAlreadyExists
		}
		return errors.Wrapf(err, "catalog: failed to create collection %s", name)
	}
	return nil
}

// ListCollections returns every registered collection name.
func (s *Store) ListCollections() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: failed to list collections")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "catalog: failed to scan collection name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// PutSchema registers a new version of a collection's schema. The
// collection must already exist. Schema versions are immutable once
// written: PutSchema fails if (collection, schema.Version) is already
// present, matching the original's schema-evolution non-goal — a
// version is never edited in place, only superseded by a new one.
func (s *Store) PutSchema(collection string, schema *Schema) error {
	w := mpack.NewWriter()
	if err := w.WriteRecord(schema); err != nil {
		return errors.Wrap(err, "catalog: failed to encode schema")
	}
	buf, err := w.Flush()
	if err != nil {
		return errors.Wrap(err, "catalog: failed to flush schema encoder")
	}

	_, err = s.db.Exec(`INSERT INTO schemas (collection, version, data) VALUES (?, ?, ?)`,
		collection, schema.Version, buf.Data())
	if err != nil {
		if isUniqueConstraint(err) {
			return ErrAlreadyExists
		}
		return errors.Wrapf(err, "catalog: failed to write schema for %s v%d", collection, schema.Version)
	}
	return nil
}

// GetSchema returns a specific schema version for a collection.
func (s *Store) GetSchema(collection string, version int32) (*Schema, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM schemas WHERE collection = ? AND version = ?`,
		collection, version).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: failed to read schema for %s v%d", collection, version)
	}
	schema := &Schema{}
	r := mpack.NewReader(mpack.Wrap(data))
	if err := r.Read(schema); err != nil {
		return nil, errors.Wrap(err, "catalog: failed to decode schema")
	}
	return schema, nil
}

// LatestSchema returns the highest-versioned schema registered for
// collection.
func (s *Store) LatestSchema(collection string) (*Schema, error) {
	// max() over zero matching rows still returns one row, with a NULL
	// column, not zero rows — sql.ErrNoRows never fires here. Scan into
	// a nullable column and treat NULL as not-found instead.
	var version sql.NullInt32
	err := s.db.QueryRow(`SELECT max(version) FROM schemas WHERE collection = ?`, collection).Scan(&version)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: failed to find latest schema version for %s", collection)
	}
	if !version.Valid {
		return nil, ErrNotFound
	}
	return s.GetSchema(collection, version.Int32)
}

// ListSchemaVersions returns every schema version registered for
// collection, ascending.
func (s *Store) ListSchemaVersions(collection string) ([]int32, error) {
	rows, err := s.db.Query(`SELECT version FROM schemas WHERE collection = ? ORDER BY version`, collection)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog: failed to list schema versions for %s", collection)
	}
	defer rows.Close()

	var versions []int32
	for rows.Next() {
		var v int32
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "catalog: failed to scan schema version")
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func isUniqueConstraint(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY must be unique"))
}
