package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paranoixa/paranoixa/build-tools/pkg"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shaders"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

var cleanShadersCmd = &cobra.Command{
	Use:   "clean-shaders [directory]",
	Short: "Removes the .spv and .wgsl files generated by compile-shaders",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry")
		if err != nil {
			return err
		}

		opts := cfg.ConverterOptions()
		opts.DryRun = dryRun

		conv := shaders.NewConverter(&shell.Runner{}, opts)
		removed, err := conv.Clean(commandContext(cmd), dirArg(args))
		if err != nil {
			return err
		}

		pkg.PrintTask(fmt.Sprintf("Removed %d files", len(removed)))
		return nil
	},
}

func init() {
	cleanShadersCmd.Flags().BoolP("dry", "n", false, "dry run; only print the files, don't delete anything")
	rootCmd.AddCommand(cleanShadersCmd)
}
