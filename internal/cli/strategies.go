package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/gork-labs/polycodec/internal/strategy"
	"github.com/spf13/cobra"
)

func newStrategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available decode strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := strategy.All()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFIELD")
			for _, s := range all {
				fmt.Fprintf(w, "%s\t%s\n", s.Name(), s.Field())
			}
			return w.Flush()
		},
	}
}
