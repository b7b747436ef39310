package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/edu-choropleth/internal/palette"
)

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the built-in color palettes",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range palette.Names() {
			p, err := palette.Lookup(name)
			if err != nil {
				return err
			}
			marker := ""
			if name == palette.Default {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%s%s\t%d\t%s\n", name, marker, p.Len(), strings.Join(p, " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(palettesCmd)
}
