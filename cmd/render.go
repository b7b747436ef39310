package main

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderOut    string
	renderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the choropleth map as SVG or HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderFormat != "svg" && renderFormat != "html" {
			return eris.Errorf("render: unsupported format %q", renderFormat)
		}

		renderID := uuid.New().String()
		log := zap.L().With(zap.String("render_id", renderID))

		env, err := initMap(cmd.Context())
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(renderOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if renderFormat == "html" {
			err = env.Renderer.HTML(w, env.Map)
		} else {
			err = env.Renderer.SVG(w, env.Map)
		}
		if cerr := closeFn(); err == nil && cerr != nil {
			err = eris.Wrap(cerr, "render: close output")
		}
		if err != nil {
			return err
		}

		s := env.Map.Summary()
		log.Info("map rendered",
			zap.String("format", renderFormat),
			zap.String("out", renderOut),
			zap.Int("counties", len(env.Map.Counties)),
			zap.Int("distinct_colors", s.DistinctColors),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output file (default stdout)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "svg", "output format: svg or html")
	rootCmd.AddCommand(renderCmd)
}
