package shaders

import (
	"context"
	"os"
	"runtime"

	"github.com/rotisserie/eris"
	"go.uber.org/multierr"

	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

// Invoker runs an external tool inside dir and waits for it to exit.
// *shell.Runner is the production implementation.
type Invoker interface {
	Invoke(ctx context.Context, dir string, args ...string) (*shell.Result, error)
}

// Action identifies what a step does.
type Action string

const (
	ActionCompile   Action = "compile"
	ActionTranslate Action = "translate"
	ActionNormalize Action = "normalize"
	ActionClean     Action = "clean"
)

// Options configures a Converter. Zero values fall back to the defaults below.
type Options struct {
	Compiler    string
	Translator  string
	TargetEnv   string
	LineEndings LineEndings
	// FailFast ends the run at the first failed step. By default failed steps
	// are recorded and the run continues; only a missing tool ends it early.
	FailFast bool
	// DryRun only logs what would be done.
	DryRun bool
	// GOOS decides whether the line ending pass runs. Defaults to runtime.GOOS.
	GOOS string
}

const (
	DefaultCompiler   = "glslangValidator"
	DefaultTranslator = "naga"
	DefaultTargetEnv  = "vulkan1.0"
)

// Step is a single unit of work of a conversion run.
type Step struct {
	Action Action
	Source Source
	// Output is the file name (relative to the source directory) the step writes.
	Output string
	// Args is the tool command line; empty for steps that don't run a tool.
	Args   []string
	Result *shell.Result
	Err    error
}

// Failed reports whether the step ran and failed.
func (s *Step) Failed() bool {
	return s.Err != nil
}

// Converter drives the external tools over a directory of shader sources.
type Converter struct {
	opts    Options
	invoker Invoker

	// OnStep is called after every executed (or skipped) step.
	OnStep func(*Step)
}

// NewConverter creates a converter that runs its tools through invoker.
func NewConverter(invoker Invoker, opts Options) *Converter {
	if opts.Compiler == "" {
		opts.Compiler = DefaultCompiler
	}
	if opts.Translator == "" {
		opts.Translator = DefaultTranslator
	}
	if opts.TargetEnv == "" {
		opts.TargetEnv = DefaultTargetEnv
	}
	if opts.LineEndings == "" {
		opts.LineEndings = LineEndingsAuto
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	return &Converter{opts: opts, invoker: invoker}
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

func (c *Converter) compileArgs(src Source) []string {
	return []string{c.opts.Compiler, "-S", src.Kind.Stage(), src.Name, "--target-env", c.opts.TargetEnv, "-o", src.SPIRVName()}
}

func (c *Converter) translateArgs(src Source) []string {
	return []string{c.opts.Translator, src.Name, src.WGSLName()}
}

// Plan returns the steps a run over disc executes, in order: all compiles
// (vertex first), all translations (vertex first) and, if enabled for the
// target OS, the line ending rewrites.
func (c *Converter) Plan(disc *Discovery) []*Step {
	sources := disc.All()
	steps := make([]*Step, 0, len(sources)*3)

	for _, src := range sources {
		steps = append(steps, &Step{
			Action: ActionCompile,
			Source: src,
			Output: src.SPIRVName(),
			Args:   c.compileArgs(src),
		})
	}

	for _, src := range sources {
		steps = append(steps, &Step{
			Action: ActionTranslate,
			Source: src,
			Output: src.WGSLName(),
			Args:   c.translateArgs(src),
		})
	}

	if c.opts.LineEndings.Applies(c.opts.GOOS) {
		for _, src := range sources {
			steps = append(steps, &Step{
				Action: ActionNormalize,
				Source: src,
				Output: src.WGSLName(),
			})
		}
	}

	return steps
}

// Report is the outcome of a conversion run.
type Report struct {
	Discovery *Discovery
	Steps     []*Step
}

// Failed returns the steps that failed.
func (r *Report) Failed() []*Step {
	failed := make([]*Step, 0)
	for _, step := range r.Steps {
		if step.Failed() {
			failed = append(failed, step)
		}
	}

	return failed
}

// Run discovers the sources in dir and converts them. An empty directory is
// not an error. Failed steps don't stop the run unless the tool is missing or
// FailFast is set; all failures are returned together at the end.
func (c *Converter) Run(ctx context.Context, dir string) (*Report, error) {
	disc, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	return c.RunDiscovery(ctx, disc)
}

// RunDiscovery converts the sources of an existing discovery without listing
// the directory again.
func (c *Converter) RunDiscovery(ctx context.Context, disc *Discovery) (*Report, error) {
	log(ctx).Info().Str("path", disc.Dir).Strs("files", names(disc.Vertex)).Msg("Vertex shader files")
	log(ctx).Info().Str("path", disc.Dir).Strs("files", names(disc.Fragment)).Msg("Fragment shader files")

	report := &Report{Discovery: disc}
	if disc.Empty() {
		log(ctx).Info().Str("path", disc.Dir).Msg("No shader sources found")
		return report, nil
	}

	var errs error
	untranslated := make(map[string]bool)

	for _, step := range c.Plan(disc) {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if step.Action == ActionNormalize && untranslated[step.Source.Name] {
			log(ctx).Warn().Str("shader", step.Source.Name).Msg("Skipping line endings because translation failed")
			if c.OnStep != nil {
				c.OnStep(step)
			}
			continue
		}

		report.Steps = append(report.Steps, step)
		c.execute(ctx, step)
		if c.OnStep != nil {
			c.OnStep(step)
		}

		if !step.Failed() {
			continue
		}

		if step.Action == ActionTranslate {
			untranslated[step.Source.Name] = true
		}

		errs = multierr.Append(errs, step.Err)
		if c.opts.FailFast || eris.Is(step.Err, shell.ErrToolNotFound) {
			return report, errs
		}

		log(ctx).Error().Err(step.Err).Str("shader", step.Source.Name).Msgf("%s failed", step.Action)
	}

	return report, errs
}

func (c *Converter) execute(ctx context.Context, step *Step) {
	logger := log(ctx).With().
		Str("shader", step.Source.Name).
		Str("stage", step.Source.Kind.Stage()).
		Logger()

	switch step.Action {
	case ActionCompile, ActionTranslate:
		logger.Info().Bool("command", true).Msg(shell.Format(step.Args...))
		if c.opts.DryRun {
			step.Result = &shell.Result{Args: step.Args, DryRun: true}
			return
		}

		step.Result, step.Err = c.invoker.Invoke(ctx, step.Source.Dir, step.Args...)
		if step.Result != nil {
			logger.Debug().
				Dur("duration", step.Result.Duration).
				Str("stdout", step.Result.Stdout).
				Str("stderr", step.Result.Stderr).
				Msgf("%s exited with %d", step.Args[0], step.Result.ExitCode)
		}
	case ActionNormalize:
		path := step.Source.WGSLPath()
		logger.Info().Str("path", path).Msgf("Converting line endings of %s to CRLF", path)
		if c.opts.DryRun {
			return
		}

		changed, err := NormalizeFile(path)
		if err != nil {
			step.Err = err
			return
		}
		if !changed {
			logger.Debug().Str("path", path).Msg("Already using CRLF")
		}
	default:
		step.Err = eris.Errorf("unexpected step %s", step.Action)
	}
}

// Clean removes the .spv and .wgsl outputs of every source in dir and returns
// the removed paths. Missing outputs are skipped.
func (c *Converter) Clean(ctx context.Context, dir string) ([]string, error) {
	disc, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0)
	for _, src := range disc.All() {
		for _, path := range []string{src.SPIRVPath(), src.WGSLPath()} {
			if err := ctx.Err(); err != nil {
				return removed, err
			}

			_, err := os.Lstat(path)
			if eris.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return removed, eris.Wrapf(err, "Could not stat %s", path)
			}

			log(ctx).Info().Str("shader", src.Name).Str("path", path).Msgf("Removing %s", path)
			if !c.opts.DryRun {
				err = os.Remove(path)
				if err != nil {
					return removed, eris.Wrapf(err, "Could not delete %s", path)
				}
			}

			removed = append(removed, path)
		}
	}

	return removed, nil
}

func names(sources []Source) []string {
	result := make([]string, len(sources))
	for idx, src := range sources {
		result[idx] = src.Name
	}

	return result
}
