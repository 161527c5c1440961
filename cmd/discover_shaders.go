package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paranoixa/paranoixa/build-tools/pkg/shaders"
)

var discoverShadersCmd = &cobra.Command{
	Use:   "discover-shaders [directory]",
	Short: "Lists the shaders compile-shaders would process",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		disc, err := shaders.Discover(dirArg(args))
		if err != nil {
			return err
		}

		return disc.Write(cmd.OutOrStdout(), format)
	},
}

func init() {
	discoverShadersCmd.Flags().String("format", "yaml", "output format (yaml or json)")
	rootCmd.AddCommand(discoverShadersCmd)
}
