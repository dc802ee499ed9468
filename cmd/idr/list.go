package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/idr/pkg/core"
	"github.com/aretw0/idr/pkg/typed"
)

var (
	listKind  string
	listQuery string
	listTSV   bool
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list [payload]",
	Short: "List the artifacts of one collection",
	Long: `List units, types, forms, strings, names, sources or map entries.
--query filters case-insensitively on the fields each collection is searched by.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := core.ParseKind(listKind)
		if err != nil {
			fatal("Invalid --kind", err)
		}
		session, _ := openSession(args)

		records := filterRecords(session, kind, listQuery)

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		writeRecords(os.Stdout, records, listTSV)
	},
}

func filterRecords(session *core.Session, kind core.Kind, query string) []core.Record {
	switch kind {
	case core.KindUnit:
		return asRecords(typed.Units(session).Filter(query))
	case core.KindType:
		return asRecords(typed.Types(session).Filter(query))
	case core.KindForm:
		return asRecords(typed.Forms(session).Filter(query))
	case core.KindString:
		return asRecords(typed.Strings(session).Filter(query))
	case core.KindName:
		return asRecords(typed.Names(session).Filter(query))
	case core.KindSource:
		return asRecords(typed.Sources(session).Filter(query))
	case core.KindMap:
		return asRecords(typed.MapEntries(session).Filter(query))
	}
	return nil
}

func asRecords[T core.Record](items []T) []core.Record {
	out := make([]core.Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// writeRecords prints one record per line. Map entries use the copy-out TSV layout
// when tsv is set.
func writeRecords(w io.Writer, records []core.Record, tsv bool) {
	for _, r := range records {
		if m, ok := r.(core.MapEntry); ok && tsv {
			fmt.Fprintln(w, m.TSV())
			continue
		}
		if tsv {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.RecordID(), r.RecordAddress(), r.RecordName())
			continue
		}
		addr := r.RecordAddress()
		if addr == "" {
			addr = "-"
		}
		fmt.Fprintf(w, "%-12s %-14s %s\n", r.RecordID(), addr, r.RecordName())
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "units", "Collection to list")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Case-insensitive filter")
	listCmd.Flags().BoolVar(&listTSV, "tsv", false, "Tab-separated output")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
