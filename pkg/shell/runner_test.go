package shell

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "naga a.vert.glsl a.vert.wgsl", Format("naga", "a.vert.glsl", "a.vert.wgsl"))
	assert.Equal(t, "glslangValidator -o 'my shader.spv'", Format("glslangValidator", "-o", "my shader.spv"))
	assert.Equal(t, "echo '*.glsl'", Format("echo", "*.glsl"))
	assert.Equal(t, `sh -c 'echo '\''hi'\'`, Format("sh", "-c", "echo 'hi'"))
	assert.Equal(t, `echo \''a b'`, Format("echo", "'a b"))
	assert.Equal(t, "echo ''", Format("echo", ""))
}

func TestRunSingleQuotes(t *testing.T) {
	runner := &Runner{}

	result, err := runner.Run(context.Background(), "echo", "it's", "'quoted'")
	require.NoError(t, err)
	assert.Equal(t, "it's 'quoted'\n", result.Stdout)
}

func TestRunCapturesOutput(t *testing.T) {
	runner := &Runner{Dir: t.TempDir()}

	result, err := runner.Run(context.Background(), "echo", "hello", "*.glsl")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello *.glsl\n", result.Stdout)
	assert.Equal(t, []string{"echo", "hello", "*.glsl"}, result.Args)
}

func TestRunNonZeroExit(t *testing.T) {
	runner := &Runner{}

	result, err := runner.Run(context.Background(), "false")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.ExitCode)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.False(t, toolErr.NotFound())
	assert.False(t, errors.Is(err, ErrToolNotFound))
	assert.Contains(t, err.Error(), "false failed with exit code 1")
}

func TestToolErrorOutput(t *testing.T) {
	err := &ToolError{Result: &Result{
		Args:     []string{"glslangValidator", "-S", "vert", "a.vert.glsl"},
		ExitCode: 2,
		Stdout:   "ERROR: a.vert.glsl:3: syntax error\n",
	}}
	assert.Equal(t, "glslangValidator -S vert a.vert.glsl failed with exit code 2: ERROR: a.vert.glsl:3: syntax error", err.Error())

	err.Result.Stderr = "fatal\n"
	assert.Equal(t, "glslangValidator -S vert a.vert.glsl failed with exit code 2: fatal", err.Error())
}

func TestRunPassesOutputThrough(t *testing.T) {
	var stdout strings.Builder
	runner := &Runner{Stdout: &stdout}

	result, err := runner.Run(context.Background(), "echo", "compiled")
	require.NoError(t, err)
	assert.Equal(t, "compiled\n", result.Stdout)
	assert.Equal(t, "compiled\n", stdout.String())
}

func TestRunMissingTool(t *testing.T) {
	runner := &Runner{}

	result, err := runner.Run(context.Background(), "definitely-not-a-shader-compiler-4711")
	require.Error(t, err)
	assert.Equal(t, 127, result.ExitCode)
	assert.True(t, errors.Is(err, ErrToolNotFound))
}

func TestRunDry(t *testing.T) {
	runner := &Runner{DryRun: true}

	result, err := runner.Run(context.Background(), "definitely-not-a-shader-compiler-4711", "x")
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.True(t, result.Success())
}

func TestRunNoArgs(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background())
	require.Error(t, err)
}
