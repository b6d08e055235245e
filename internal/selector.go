package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrNoPEMFiles is returned when a directory scan finds nothing to
// convert.
var ErrNoPEMFiles = errors.New("no PEM files found")

// FindPEMFiles lists files in dir with a ".pem" suffix (case-sensitive),
// sorted lexicographically.
func FindPEMFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".pem") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// SelectInput resolves the PEM file to process. An explicit path is
// validated and returned as-is. Otherwise the current directory is
// scanned for .pem files; with interactive set, the user picks from a
// numbered list, and without it the first file is taken (the same
// default as pressing Enter at the prompt).
func SelectInput(path string, interactive bool, in io.Reader, out io.Writer) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return path, nil
	}

	files, err := FindPEMFiles(".")
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoPEMFiles
	}

	if !interactive {
		return files[0], nil
	}
	return promptSelection(files, in, out)
}

// promptSelection shows a numbered listing and reads one line per
// attempt until a valid 1-based index (or empty input, meaning the
// first file) is entered.
func promptSelection(files []string, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Available PEM files:")
	for i, f := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, f)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Select a file to process [1-%d] (Enter for 1): ", len(files))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading selection: %w", err)
			}
			return "", errors.New("no selection made")
		}
		choice := strings.TrimSpace(scanner.Text())
		if choice == "" {
			return files[0], nil
		}
		n, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number.")
			continue
		}
		if n < 1 || n > len(files) {
			fmt.Fprintln(out, "Invalid selection. Please try again.")
			continue
		}
		return files[n-1], nil
	}
}
