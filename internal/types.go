package internal

import "time"

// Config holds the runtime configuration for one conversion.
type Config struct {
	InputPath string
	OutDir    string
	DB        *DB
}

// Result describes a completed conversion.
type Result struct {
	InputPath  string
	OutputPath string
	FieldCount int
	CMSParsed  bool
	CSV        []byte
}

// ConversionRecord is one row of the conversion history catalog.
type ConversionRecord struct {
	InputPath   string    `db:"input_path"`
	OutputPath  string    `db:"output_path"`
	PayloadHash string    `db:"payload_sha256"`
	CMSParsed   bool      `db:"cms_parsed"`
	FieldCount  int       `db:"field_count"`
	CreatedAt   time.Time `db:"created_at"`
}
