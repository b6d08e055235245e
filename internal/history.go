package internal

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB is the conversion history catalog.
type DB struct {
	*sqlx.DB
}

// NewDB opens (or creates) the history database at path. An empty path
// opens an in-memory database, which is useful for tests and for runs
// that do not keep history.
func NewDB(path string) (*DB, error) {
	dsn := "file::memory:?_pragma=journal_mode(off)&_pragma=synchronous(off)"
	if path != "" {
		dsn = path
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each :memory: connection is a separate database, so pin to one.
	db.SetMaxOpenConns(1)

	dbObj := &DB{DB: db}
	if err := dbObj.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	slog.Debug("history database initialized", "path", path)
	return dbObj, nil
}

func (db *DB) initSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			input_path     text NOT NULL,
			output_path    text NOT NULL,
			payload_sha256 text NOT NULL,
			cms_parsed     boolean NOT NULL,
			field_count    integer NOT NULL,
			created_at     timestamp NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating conversions table: %w", err)
	}
	return nil
}

// InsertConversion records one completed conversion.
func (db *DB) InsertConversion(rec ConversionRecord) error {
	_, err := db.NamedExec(`
		INSERT INTO conversions (input_path, output_path, payload_sha256, cms_parsed, field_count, created_at)
		VALUES (:input_path, :output_path, :payload_sha256, :cms_parsed, :field_count, :created_at)
	`, rec)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	return nil
}

// GetConversions returns all recorded conversions, newest first.
func (db *DB) GetConversions() ([]ConversionRecord, error) {
	var recs []ConversionRecord
	err := db.Select(&recs, "SELECT * FROM conversions ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("getting conversions: %w", err)
	}
	return recs, nil
}
