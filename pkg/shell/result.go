package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrToolNotFound matches every ToolError caused by a missing executable.
var ErrToolNotFound = eris.New("tool not found")

// exit status the interpreter reports for commands it can't find
const statusNotFound = 127

// Result captures a single external tool invocation.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	DryRun   bool
}

// Success reports whether the tool exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Command returns the printed command line.
func (r *Result) Command() string {
	return Format(r.Args...)
}

// ToolError is returned for every invocation that exited with a non-zero status.
type ToolError struct {
	Result *Result
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed with exit code %d", e.Result.Command(), e.Result.ExitCode)

	// glslangValidator reports compile errors on stdout
	output := strings.TrimSpace(e.Result.Stderr)
	if output == "" {
		output = strings.TrimSpace(e.Result.Stdout)
	}
	if output != "" {
		msg += ": " + output
	}

	return msg
}

// Is makes eris.Is(err, ErrToolNotFound) work for missing executables.
func (e *ToolError) Is(target error) bool {
	return target == ErrToolNotFound && e.Result.ExitCode == statusNotFound
}

// NotFound reports whether the executable could not be located.
func (e *ToolError) NotFound() bool {
	return e.Result.ExitCode == statusNotFound
}
