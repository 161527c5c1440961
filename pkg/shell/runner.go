package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const killTimeout = 2 * time.Second

// Runner executes commands one at a time.
type Runner struct {
	// Dir is the working directory for every command. Empty means the current directory.
	Dir string
	// Env overrides entries of the process environment (KEY=value).
	Env []string
	// DryRun skips execution and returns a successful Result.
	DryRun bool
	// Stdout and Stderr additionally receive the tool output when set.
	Stdout io.Writer
	Stderr io.Writer
}

func (r *Runner) environ() expand.Environ {
	envVars := os.Environ()
	envVars = append(envVars, r.Env...)

	return expand.ListEnviron(envVars...)
}

// Run executes args[0] with the remaining arguments and waits for it to exit.
// A non-zero exit status is reported as a *ToolError next to the populated Result.
func (r *Runner) Run(ctx context.Context, args ...string) (*Result, error) {
	if len(args) == 0 {
		return nil, eris.New("no command given")
	}

	result := &Result{Args: append([]string(nil), args...)}
	if r.DryRun {
		result.DryRun = true
		return result, nil
	}

	var stdout, stderr bytes.Buffer
	var outWriter io.Writer = &stdout
	var errWriter io.Writer = &stderr
	if r.Stdout != nil {
		outWriter = io.MultiWriter(&stdout, r.Stdout)
	}
	if r.Stderr != nil {
		errWriter = io.MultiWriter(&stderr, r.Stderr)
	}

	opts := []interp.RunnerOption{
		interp.Env(r.environ()),
		interp.ExecHandler(interp.DefaultExecHandler(killTimeout)),
		interp.StdIO(nil, outWriter, errWriter),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return nil, eris.Wrap(err, "Failed to initialize runner")
	}

	start := time.Now()
	err = runner.Run(ctx, &syntax.Stmt{Cmd: CallExpr(args...)})
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		status, ok := interp.IsExitStatus(err)
		if !ok {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			return result, eris.Wrapf(err, "Failed to run %s", result.Command())
		}

		result.ExitCode = int(status)
		return result, &ToolError{Result: result}
	}

	return result, nil
}

// Invoke runs args with dir as the working directory.
func (r *Runner) Invoke(ctx context.Context, dir string, args ...string) (*Result, error) {
	sub := *r
	sub.Dir = dir
	return sub.Run(ctx, args...)
}
