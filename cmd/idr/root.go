package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/idr"
)

var (
	verbose bool
	strict  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "idr",
	Short: "Inspect and edit decompiler session payloads",
	Long: `idr loads the artifact collections produced by a Delphi decompiler
(units, RTTI types, forms, strings, names, listings, memory map and class tree),
lets you search them, and replays edits through an undo/redo journal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fatal("command failed", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject unknown payload fields")
}

// openSession loads the payload named by args, or the one found from the working
// directory.
func openSession(args []string) (*idr.Session, *idr.Loader) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	session, loader, err := idr.Open(path,
		idr.WithStrict(strict),
		idr.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Error opening session", err)
	}
	return session, loader
}
