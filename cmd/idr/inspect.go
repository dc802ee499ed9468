package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/idr/pkg/core"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [payload]",
	Short: "Summarize a session payload",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, loader := openSession(args)

		if inspectJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			state := map[string]any{
				session.ComponentType(): session.State(),
				loader.ComponentType():  loader.State(),
			}
			if err := encoder.Encode(state); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		writeSummary(os.Stdout, session)
	},
}

func writeSummary(w io.Writer, session *core.Session) {
	if f, ok := session.File(); ok {
		version := f.DelphiVersion
		if version == "" {
			version = core.DelphiAuto
		}
		fmt.Fprintf(w, "File:     %s (%s, %d bytes)\n", f.Name, version, f.Size)
	}
	counts := session.Counts()
	for _, k := range core.Kinds {
		fmt.Fprintf(w, "%-9s %d\n", string(k)+":", counts[k])
	}
	fmt.Fprintf(w, "%-9s %d\n", "classes:", core.Count(session.ClassTree()))
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output session and loader state as JSON")
}
