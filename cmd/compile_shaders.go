package cmd

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/paranoixa/paranoixa/build-tools/pkg"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shaders"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

var compileShadersCmd = &cobra.Command{
	Use:   "compile-shaders [directory]",
	Short: "Compiles GLSL shaders to SPIR-V and WGSL",
	Long: `Compiles every *.vert.glsl and *.frag.glsl file in the given directory (default: the
current directory) to SPIR-V with glslangValidator and translates it to WGSL with naga.
On Windows, the WGSL files are rewritten with CRLF line endings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := converterOptions(cmd)
		if err != nil {
			return err
		}

		showProgress, err := cmd.Flags().GetBool("progress")
		if err != nil {
			return err
		}

		reportPath, err := cmd.Flags().GetString("report")
		if err != nil {
			return err
		}

		ctx := commandContext(cmd)
		dir := dirArg(args)

		pkg.PrintTask("Looking for shaders in " + dir)
		disc, err := shaders.Discover(dir)
		if err != nil {
			return err
		}

		conv := shaders.NewConverter(&shell.Runner{Stdout: os.Stdout, Stderr: os.Stderr}, opts)
		if showProgress {
			bar := getProgressBar(len(conv.Plan(disc)), "Converting shaders")
			conv.OnStep = func(*shaders.Step) {
				_ = bar.Add(1)
			}
			defer bar.Finish()
		}

		pkg.PrintTask("Converting shaders")
		report, runErr := conv.RunDiscovery(ctx, disc)
		if report != nil && reportPath != "" {
			err = writeReport(report, reportPath)
			if err != nil {
				pkg.PrintError(err.Error())
			}
		}

		if runErr != nil {
			return runErr
		}

		pkg.PrintTask("Done")
		return nil
	},
}

func init() {
	flags := compileShadersCmd.Flags()
	flags.BoolP("dry", "n", false, "dry run; only print the commands, don't execute anything")
	flags.Bool("fail-fast", false, "stop at the first failed tool invocation instead of converting the remaining shaders")
	flags.String("line-endings", "auto", "rewrite WGSL output with CRLF: auto (Windows only), crlf or keep")
	flags.String("compiler", "", "SPIR-V compiler executable (default glslangValidator)")
	flags.String("translator", "", "WGSL translator executable (default naga)")
	flags.String("target-env", "", "target environment passed to the compiler (default vulkan1.0)")
	flags.Bool("progress", false, "show a progress bar")
	flags.String("report", "", "write a YAML report of all steps to this file")

	rootCmd.AddCommand(compileShadersCmd)
}

// converterOptions merges the loaded config with the flags that were explicitly set.
func converterOptions(cmd *cobra.Command) (shaders.Options, error) {
	opts := cfg.ConverterOptions()
	flags := cmd.Flags()

	for name, dest := range map[string]*string{
		"compiler":   &opts.Compiler,
		"translator": &opts.Translator,
		"target-env": &opts.TargetEnv,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}

		value, err := flags.GetString(name)
		if err != nil {
			return opts, err
		}
		*dest = value
	}

	if flags.Lookup("line-endings") != nil && flags.Changed("line-endings") {
		value, err := flags.GetString("line-endings")
		if err != nil {
			return opts, err
		}

		opts.LineEndings, err = shaders.ParseLineEndings(value)
		if err != nil {
			return opts, err
		}
	}

	if flags.Lookup("fail-fast") != nil && flags.Changed("fail-fast") {
		value, err := flags.GetBool("fail-fast")
		if err != nil {
			return opts, err
		}
		opts.FailFast = value
	}

	dryRun, err := flags.GetBool("dry")
	if err != nil {
		return opts, err
	}
	opts.DryRun = dryRun

	return opts, nil
}

func getProgressBar(length int, desc string) *progressbar.ProgressBar {
	if os.Getenv("CI") == "true" {
		return progressbar.NewOptions(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions(length,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
}

func writeReport(report *shaders.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "Failed to create %s", path)
	}
	defer f.Close()

	err = report.Write(f, "yaml")
	if err != nil {
		return eris.Wrapf(err, "Failed to write %s", path)
	}

	return nil
}
