package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <fips>...",
	Short: "Print the record, bucket and color for county FIPS codes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := make([]int, len(args))
		for i, a := range args {
			k, err := strconv.Atoi(a)
			if err != nil {
				return eris.Errorf("lookup: invalid fips %q", a)
			}
			keys[i] = k
		}

		env, err := initMap(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, k := range keys {
			row, ok := env.Map.Row(k)
			if !ok {
				fmt.Fprintf(out, "%d\tnot found\n", k)
				continue
			}
			fmt.Fprintf(out, "%d\t%s\tbucket %d\t%s\n", k, choropleth.Tooltip(row.Record), row.Bucket, row.Color)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
