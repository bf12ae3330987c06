/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// the variables, so they do not depend on cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jpl-au/globfs/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

var (
	output  string
	verbose bool
	db      string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Verbose reports whether --verbose was given.
func Verbose() bool { return verbose }

// DB returns the snapshot database path.
// Priority: --db flag > GLOBFS_DB env var > empty (use config).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv(config.EnvDB)
}

// Colour reports whether human output should be coloured: only when
// writing to stdout and stdout is a terminal.
func Colour() bool {
	return out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	// If printing fails there is nowhere left to report it; returning nil
	// still stops cobra printing the error a second time.
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// newLogger returns the diagnostic logger: debug on stderr with --verbose,
// otherwise discarded.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped directories and match statistics to stderr")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Snapshot database file (overrides snapshot.db)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
