package cli

import (
	"fmt"
	"reflect"

	"github.com/gork-labs/polycodec/internal/strategy"
	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/gork-labs/polycodec/pkg/unions"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run [document]",
		Short: "Decode an operation document and print its result",
		Long: "Decode an operation document and print its result.\n\n" +
			"The document is taken from the argument, --file, or standard input.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			s, err := a.strategy()
			if err != nil {
				return err
			}

			op, err := s.Decode(data)
			if err != nil {
				a.log.WithError(err).WithField("strategy", s.Name()).Debug("decode failed")
				return err
			}

			result := operation.Executor{}.Execute(op)
			a.log.WithFields(logrus.Fields{
				"strategy": s.Name(),
				"variant":  variantName(op),
			}).Debug("operation executed")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Type: %s\n", variantName(op))
			fmt.Fprintf(out, "Result: %d\n", result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the document from a JSON or JSONC file")
	return cmd
}

const prettyIndent = "  "

// strategy returns the configured catalog strategy, or a registry codec on
// the configured discriminator and backend.
func (a *app) strategy() (strategy.Strategy, error) {
	if a.cfg.Strategy != "" {
		s, err := strategy.Lookup(a.cfg.Strategy)
		if err != nil {
			return nil, err
		}
		a.log.WithField("field", s.Field()).Debugf("using strategy %s", s.Name())
		return s, nil
	}

	api, err := unions.BackendByName(a.cfg.Backend)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"field":   a.cfg.Discriminator,
		"backend": a.cfg.Backend,
	}).Debug("using registry codec")
	var opts []unions.Option
	if a.cfg.Pretty {
		opts = append(opts, unions.WithIndent(prettyIndent))
	}
	return strategy.NewRegistry("registry", a.cfg.Discriminator, api, opts...)
}

func variantName(op operation.Operation) string {
	t := reflect.TypeOf(op)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
