package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/paranoixa/paranoixa/build-tools/pkg/config"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shaders"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tool",
	Short: "Build tools for paranoixa",
	Long: `This command bundles the helpers used while developing paranoixa.
This includes converting the test shaders to SPIR-V and WGSL and linking the
test resources into the build tree.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		files := []string{}
		cfgFile, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		if cfgFile != "" {
			files = append(files, cfgFile)
		} else if _, err := os.Stat(config.DefaultFile); err == nil {
			files = append(files, config.DefaultFile)
		}

		cfg, err = config.Load(files...)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, err = cmd.Flags().GetString("log-level")
			if err != nil {
				return err
			}

			if err = cfg.Validate(); err != nil {
				return err
			}
		}

		logger = zerolog.New(NewConsoleWriter(os.Stderr)).Level(cfg.Level())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// commandContext returns the command's context with the configured logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return shaders.WithLogger(ctx, &logger)
}

// dirArg returns the optional directory argument, defaulting to the working directory.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return "."
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
