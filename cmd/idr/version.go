package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/idr"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of idr",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("idr version %s\n", strings.TrimSpace(idr.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
