// Package cli provides the polycodec command-line interface.
package cli

import (
	"fmt"

	"github.com/gork-labs/polycodec/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries the state shared by every subcommand once the root command
// has loaded configuration.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:          "polycodec",
		Short:        "Decode, execute and encode polymorphic operation documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML config file (default ./.polycodec.yml if present)")
	flags.String("discriminator", "$type", "Discriminator field name for the registry codec")
	flags.String("strategy", "", "Decode strategy to use instead of the registry codec (see 'strategies')")
	flags.String("backend", "std", "JSON backend for the registry codec: std, jsoniter or goccy")
	flags.Bool("pretty", false, "Indent encoded documents")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn or error")

	a.bind("discriminator", flags.Lookup("discriminator"))
	a.bind("strategy", flags.Lookup("strategy"))
	a.bind("backend", flags.Lookup("backend"))
	a.bind("pretty", flags.Lookup("pretty"))
	a.bind("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newRunCommand(a),
		newEncodeCommand(a),
		newSchemaCommand(a),
		newStrategiesCommand(),
	)
	return rootCmd
}

// bind lets a flag override key when it is set on the command line.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag for %s: %v", key, err))
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(level)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a.log.WithFields(logrus.Fields{
		"discriminator": cfg.Discriminator,
		"strategy":      cfg.Strategy,
		"backend":       cfg.Backend,
	}).Debug("configuration loaded")
	return nil
}
