package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sensiblebit/pemcsv/internal"
	"github.com/spf13/cobra"
)

var (
	filePath    string
	logLevel    string
	outDir      string
	configPath  string
	dbPath      string
	showHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "pemcsv",
	Short: "Convert XML payloads in PEM containers to CSV",
	Long:  "Extract the XML payload embedded in a PEM-encoded CMS/PKCS#7 container, flatten it into a single record, and write it as a two-row CSV file.",
	Example: `  pemcsv --file record.pem
  pemcsv                          (pick from .pem files in the current directory)
  pemcsv -f record.pem -d history.db`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to the PEM file to process")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory for the generated CSV (default: current directory)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "./pemcsv.yaml", "Path to options YAML")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite conversion history path")
	rootCmd.Flags().BoolVar(&showHistory, "history", false, "Print recorded conversion history and exit")
}

func runConvert(cmd *cobra.Command, args []string) error {
	// An explicitly given options file must exist; the default lookup
	// may be silently absent.
	opts, err := internal.LoadOptions(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		opts.LogLevel = logLevel
	}
	if cmd.Flags().Changed("out") {
		opts.OutDir = outDir
	}
	if cmd.Flags().Changed("db") {
		opts.DBPath = dbPath
	}
	internal.SetupLogger(opts.LogLevel)

	var db *internal.DB
	if opts.DBPath != "" {
		db, err = internal.NewDB(opts.DBPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer db.Close()
	}

	if showHistory {
		if db == nil {
			return errors.New("--history requires --db (or a db entry in the options file)")
		}
		return printHistory(db)
	}

	interactive := filePath == "" && isatty.IsTerminal(os.Stdin.Fd())
	input, err := internal.SelectInput(filePath, interactive, os.Stdin, os.Stdout)
	if err != nil {
		if errors.Is(err, internal.ErrNoPEMFiles) {
			fmt.Println("No PEM files found in current directory")
			fmt.Println("Usage: pemcsv --file <path-to-pem-file>")
		}
		return err
	}

	result, err := internal.Convert(&internal.Config{
		InputPath: input,
		OutDir:    opts.OutDir,
		DB:        db,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nConverted %s\n", result.InputPath)
	fmt.Printf("  Output: %s\n", result.OutputPath)
	fmt.Printf("  Fields: %d\n", result.FieldCount)
	if !result.CMSParsed {
		fmt.Println("  Note:   CMS parsing failed; XML was recovered by raw byte scan")
	}
	fmt.Printf("\nCSV preview:\n%s", result.Preview(opts.PreviewLines))
	return nil
}

func printHistory(db *internal.DB) error {
	recs, err := db.GetConversions()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No conversions recorded")
		return nil
	}
	for _, r := range recs {
		fmt.Printf("%s  %s -> %s (%d fields, cms_parsed=%t)\n",
			r.CreatedAt.Format(time.RFC3339), r.InputPath, r.OutputPath, r.FieldCount, r.CMSParsed)
	}
	return nil
}
