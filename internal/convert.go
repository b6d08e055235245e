package internal

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sensiblebit/pemcsv"
)

// Convert runs the full pipeline on cfg.InputPath: extract the XML
// payload, flatten it, and write a two-row CSV next to the input (or
// into cfg.OutDir). The CSV is assembled in memory and written in a
// single operation so an interrupted run never leaves a partial file.
func Convert(cfg *Config) (*Result, error) {
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.InputPath, err)
	}
	slog.Info("PEM file loaded", "path", cfg.InputPath, "bytes", len(data))

	der, err := pemcsv.ExtractArmoredData(string(data))
	if err != nil {
		return nil, fmt.Errorf("extracting armored data from %s: %w", cfg.InputPath, err)
	}

	payload := pemcsv.ExtractContent(der)
	slog.Debug("content recovered", "cms_parsed", payload.Parsed, "bytes", len(payload.Content))

	xmlText, err := pemcsv.LocateXML(pemcsv.DecodeText(payload.Content))
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", cfg.InputPath, err)
	}
	slog.Info("XML content extracted", "bytes", len(xmlText))

	root, err := parseWithCleanup(xmlText)
	if err != nil {
		return nil, err
	}

	rec := pemcsv.Flatten(root)
	slog.Info("XML flattened", "fields", rec.Len())

	var buf bytes.Buffer
	if err := pemcsv.WriteCSV(&buf, rec); err != nil {
		return nil, err
	}

	outPath := OutputPath(cfg.InputPath, cfg.OutDir)
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}
	slog.Info("CSV written", "path", outPath)

	result := &Result{
		InputPath:  cfg.InputPath,
		OutputPath: outPath,
		FieldCount: rec.Len(),
		CMSParsed:  payload.Parsed,
		CSV:        buf.Bytes(),
	}

	if cfg.DB != nil {
		hash := sha256.Sum256(payload.Content)
		record := ConversionRecord{
			InputPath:   cfg.InputPath,
			OutputPath:  outPath,
			PayloadHash: hex.EncodeToString(hash[:]),
			CMSParsed:   payload.Parsed,
			FieldCount:  rec.Len(),
			CreatedAt:   time.Now().UTC(),
		}
		if err := cfg.DB.InsertConversion(record); err != nil {
			slog.Warn("recording conversion history", "error", err)
		}
	}

	return result, nil
}

// parseWithCleanup parses the located XML fragment, retrying once with
// non-printable characters stripped. Extracted fragments sometimes drag
// in stray control bytes from the surrounding binary structure.
func parseWithCleanup(xmlText string) (*pemcsv.Element, error) {
	root, err := pemcsv.ParseXML(xmlText)
	if err == nil {
		return root, nil
	}
	slog.Warn("XML parse failed, retrying after cleanup", "error", err)
	root, retryErr := pemcsv.ParseXML(pemcsv.StripNonPrintable(xmlText))
	if retryErr != nil {
		return nil, retryErr
	}
	return root, nil
}

// OutputPath derives the CSV destination from the input filename:
// the basename with its extension replaced by .csv, placed in outDir.
func OutputPath(inputPath, outDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if outDir == "" {
		outDir = "."
	}
	return filepath.Join(outDir, stem+".csv")
}

// Preview returns up to n lines of the generated CSV, numbered for
// console display.
func (r *Result) Preview(n int) string {
	lines := strings.Split(strings.TrimRight(string(r.CSV), "\n"), "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i >= n {
			fmt.Fprintf(&sb, "... and %d more lines\n", len(lines)-n)
			break
		}
		fmt.Fprintf(&sb, "%d: %s\n", i+1, line)
	}
	return sb.String()
}
