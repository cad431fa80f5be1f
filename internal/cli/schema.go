package cli

import (
	"github.com/gork-labs/polycodec/internal/schema"
	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/spf13/cobra"
)

func newSchemaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI schema of the operation union",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			field := a.cfg.Discriminator
			if a.cfg.Strategy != "" {
				s, err := a.strategy()
				if err != nil {
					return err
				}
				field = s.Field()
			}

			reg, err := operation.NewRegistry()
			if err != nil {
				return err
			}
			doc, err := schema.Generate(reg, field,
				schema.WithTitle(a.cfg.Schema.Title),
				schema.WithVersion(a.cfg.Schema.Version),
				schema.WithUnionName("Operation"),
			)
			if err != nil {
				return err
			}
			if err := schema.Check(doc); err != nil {
				return err
			}
			return schema.Write(cmd.OutOrStdout(), a.cfg.Schema.Format, doc)
		},
	}

	cmd.Flags().String("format", "json", "Output format: json or yaml")
	a.bind("schema.format", cmd.Flags().Lookup("format"))
	return cmd
}
