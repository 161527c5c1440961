package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paranoixa/paranoixa/build-tools/pkg"
)

var linkResCmd = &cobra.Command{
	Use:   "link-res [project root]",
	Short: "Links the test resources into the build tree",
	Long: `Creates a symbolic link from build/source/phonon/res to test/res unless the
link (or anything else) already exists at that path. The project root defaults to
the closest parent directory containing .git.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var root string
		var err error
		if len(args) > 0 {
			root = args[0]
		} else {
			root, err = pkg.GetProjectRoot()
			if err != nil {
				return err
			}
		}

		link := cfg.ResourceLink(root)
		source, err := link.SourcePath()
		if err != nil {
			return err
		}

		created, err := link.Create()
		if err != nil {
			return err
		}

		if created {
			pkg.PrintTask("Symbolic link created: " + link.TargetPath() + " -> " + source)
		} else {
			pkg.PrintTask("Symbolic link already present: " + link.TargetPath())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkResCmd)
}
