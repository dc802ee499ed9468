package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/idr/pkg/core"
)

var (
	treeForm   string
	treeQuery  string
	treeBranch string
	treeAll    bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [payload]",
	Short: "Print the class hierarchy or a form's component tree",
	Long: `Print the class hierarchy, or with --form the component tree of a form
("-" picks the first form). Nodes open at depth 0 only, unless --all is set or a
--query is given. Matching nodes are marked with '*'.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, _ := openSession(args)

		var roots []*core.Node
		if treeForm != "" {
			if treeForm != "-" {
				session.Select(core.ViewForm, treeForm)
			}
			session.Read(func(st *core.Store) {
				if f, ok := st.ActiveForm(); ok && f.Structure != nil {
					roots = []*core.Node{f.Structure}
				}
			})
		} else {
			roots = session.ClassTree()
		}

		if treeBranch != "" {
			roots = core.Branch(roots, treeBranch)
		}
		roots = core.Filter(roots, treeQuery)

		exp := core.NewExpansion()
		if treeAll || treeQuery != "" {
			exp.ExpandAll(roots)
		}
		writeTree(os.Stdout, core.Flatten(roots, exp), treeQuery)
	},
}

func writeTree(w io.Writer, rows []core.Row, query string) {
	for _, r := range rows {
		mark := " "
		if core.Matches(r.Node, query) {
			mark = "*"
		}
		line := strings.Repeat("  ", r.Depth) + r.Node.Name
		if r.Node.Kind != "" {
			line += ": " + r.Node.Kind
		}
		if r.Node.Address != "" {
			line += " @" + r.Node.Address
		}
		if n := len(r.Node.Methods); n > 0 {
			line += fmt.Sprintf(" (%d methods)", n)
		}
		fmt.Fprintf(w, "%s %s\n", mark, line)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVar(&treeForm, "form", "", "Form id whose component tree to print")
	treeCmd.Flags().StringVarP(&treeQuery, "query", "q", "", "Filter by node name")
	treeCmd.Flags().StringVar(&treeBranch, "branch", "", "Only the path to this node id and its subtree")
	treeCmd.Flags().BoolVar(&treeAll, "all", false, "Expand every node")
}
