package pkg

import (
	"context"
	"strings"

	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

// ToolStatus is the outcome of probing a single external tool.
type ToolStatus struct {
	Name    string
	Version string
	Err     error
}

// CheckTools runs "<tool> --version" for every tool and collects the first
// line of output. Tools are probed one after another.
func CheckTools(ctx context.Context, runner *shell.Runner, tools ...string) []ToolStatus {
	result := make([]ToolStatus, len(tools))
	for idx, name := range tools {
		result[idx].Name = name

		res, err := runner.Run(ctx, name, "--version")
		if err != nil {
			result[idx].Err = err
			continue
		}

		output := res.Stdout
		if strings.TrimSpace(output) == "" {
			output = res.Stderr
		}

		result[idx].Version = strings.TrimSpace(strings.SplitN(strings.TrimSpace(output), "\n", 2)[0])
	}

	return result
}
