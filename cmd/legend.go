package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
	"github.com/sells-group/edu-choropleth/internal/render"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the color buckets, their intervals and county counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initMap(cmd.Context())
		if err != nil {
			return err
		}
		printLegend(cmd.OutOrStdout(), env.Map, cfg.Render.TickPrecision)
		return nil
	},
}

func printLegend(w io.Writer, m *choropleth.Map, precision int) {
	counts := m.Summary().BucketCounts
	colors := m.Classifier.Colors()
	for i, iv := range m.Classifier.Intervals() {
		closing := ")"
		if iv.Closed {
			closing = "]"
		}
		fmt.Fprintf(w, "%d\t%s\t[%s, %s%s\t%d\n", i, colors[i],
			render.FormatTick(iv.Low, precision), render.FormatTick(iv.High, precision), closing, counts[i])
	}
}

func init() {
	rootCmd.AddCommand(legendCmd)
}
