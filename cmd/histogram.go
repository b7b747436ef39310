package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/edu-choropleth/internal/histogram"
)

var (
	histogramOut    string
	histogramWidth  float64
	histogramHeight float64
)

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Draw a bar chart of counties per color bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		if histogramOut == "" {
			return eris.New("histogram: --out is required")
		}
		format := strings.TrimPrefix(filepath.Ext(histogramOut), ".")
		if format == "" {
			format = "png"
		}

		env, err := initMap(cmd.Context())
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(histogramOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		err = histogram.Render(w, env.Map, format, histogramWidth, histogramHeight)
		if cerr := closeFn(); err == nil && cerr != nil {
			err = eris.Wrap(cerr, "histogram: close output")
		}
		return err
	},
}

func init() {
	histogramCmd.Flags().StringVar(&histogramOut, "out", "", "output file; the extension picks the format")
	histogramCmd.Flags().Float64Var(&histogramWidth, "width", 480, "width in points")
	histogramCmd.Flags().Float64Var(&histogramHeight, "height", 320, "height in points")
	rootCmd.AddCommand(histogramCmd)
}
