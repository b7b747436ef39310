package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/edu-choropleth/internal/export"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the classified county table as XLSX or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		write := export.WriteXLSX
		switch exportFormat {
		case "xlsx":
		case "csv":
			write = export.WriteCSV
		default:
			return eris.Errorf("export: unsupported format %q", exportFormat)
		}

		env, err := initMap(cmd.Context())
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(exportOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		err = write(w, env.Map)
		if cerr := closeFn(); err == nil && cerr != nil {
			err = eris.Wrap(cerr, "export: close output")
		}
		if err != nil {
			return err
		}

		zap.L().Info("table exported",
			zap.String("format", exportFormat),
			zap.String("out", exportOut),
			zap.Int("records", env.Map.Index.Len()),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "output format: xlsx or csv")
	rootCmd.AddCommand(exportCmd)
}
