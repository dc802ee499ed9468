package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/idr/pkg/adapters/fs"
	"github.com/aretw0/idr/pkg/core"
)

var (
	replayEdits string
	replayUndo  int
	replayOut   string
)

var replayCmd = &cobra.Command{
	Use:   "replay [payload]",
	Short: "Apply an edit script to a session and export the journal",
	Long: `Apply the edits listed in --edits (JSON or YAML) in order, then undo the last
--undo of them. Edits that do not change the effective value are skipped.
The resulting journal, redo branch included, is written to --out when set.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if replayEdits == "" {
			fatal("Missing flag", fmt.Errorf("--edits is required"))
		}
		edits, err := fs.ReadEdits(replayEdits, strict)
		if err != nil {
			fatal("Error reading edits", err)
		}
		session, _ := openSession(args)

		if err := replay(session, edits, replayUndo); err != nil {
			fatal("Error applying edits", err)
		}
		writeJournal(os.Stdout, session)

		if replayOut != "" {
			if err := fs.WriteJournal(replayOut, session); err != nil {
				fatal("Error writing journal", err)
			}
			slog.Info("journal written", "path", replayOut)
		}
	},
}

func replay(session *core.Session, edits []core.Edit, undo int) error {
	for i, e := range edits {
		_, changed, err := session.Apply(e)
		if err != nil {
			return fmt.Errorf("edit %d: %w", i, err)
		}
		if !changed {
			slog.Debug("edit skipped, value unchanged", "index", i, "id", e.ID)
		}
	}
	for range undo {
		if _, ok := session.Undo(); !ok {
			break
		}
	}
	return nil
}

// writeJournal lists every record, marking the ones in effect with '+'.
func writeJournal(w io.Writer, session *core.Session) {
	records, cursor := session.History()
	for i, m := range records {
		mark := "+"
		if i > cursor {
			mark = " "
		}
		fmt.Fprintf(w, "%s %-12s %-24s %q -> %q\n", mark, m.Kind, m.Target, m.OriginalValue, m.NewValue)
	}
	fmt.Fprintf(w, "cursor %d of %d, dirty=%t\n", cursor, len(records), session.Dirty())
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayEdits, "edits", "", "Edit script (JSON or YAML)")
	replayCmd.Flags().IntVar(&replayUndo, "undo", 0, "Number of edits to undo after replaying")
	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "", "Journal output file")
}
