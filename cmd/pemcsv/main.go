package main

import (
	"fmt"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	// The CSV is written in one operation, so exiting here cannot leave
	// a partial output file.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		fmt.Fprintln(os.Stderr, "Operation cancelled")
		os.Exit(1)
	}()

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
