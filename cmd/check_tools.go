package cmd

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/paranoixa/paranoixa/build-tools/pkg"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

var checkToolsCmd = &cobra.Command{
	Use:   "check-tools",
	Short: "Checks that the shader compiler and translator are installed",
	Long: `Runs the configured SPIR-V compiler and WGSL translator with --version and
reports which of them could not be found in your PATH.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.ConverterOptions()

		pkg.PrintTask("Checking tools")
		missing := 0
		for _, status := range pkg.CheckTools(commandContext(cmd), &shell.Runner{}, opts.Compiler, opts.Translator) {
			if status.Err != nil {
				pkg.PrintError(status.Name + ": " + status.Err.Error())
				missing++
			} else {
				pkg.PrintSubtask(status.Name + ": " + status.Version)
			}
		}

		if missing > 0 {
			return eris.Errorf("%d tools are missing or broken", missing)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkToolsCmd)
}
