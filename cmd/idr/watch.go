package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	sessionsource "github.com/aretw0/idr/pkg/adapters/lifecycle"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch [payload]",
	Short: "Reload the session when its payload changes and print session events",
	Long: `Watch the payload file and reload the session on every change. Session events
whose target matches --pattern (a doublestar glob) are printed until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, loader := openSession(args)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source := sessionsource.NewSource(session, watchPattern)
		if err := source.Start(ctx); err != nil {
			fatal("Error subscribing to session", err)
		}
		if err := loader.Watch(ctx); err != nil {
			fatal("Error starting watcher", err)
		}
		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", loader.Path())

		for e := range source.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "**", "Glob over event targets")
}
