package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paranoixa/paranoixa/build-tools/pkg/shaders"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "glslangValidator", cfg.Compiler)
	assert.Equal(t, "naga", cfg.Translator)
	assert.Equal(t, "vulkan1.0", cfg.TargetEnv)
	assert.Equal(t, "auto", cfg.LineEndings)
	assert.False(t, cfg.FailFast)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())

	opts := cfg.ConverterOptions()
	assert.Equal(t, shaders.LineEndingsAuto, opts.LineEndings)
	assert.Equal(t, "glslangValidator", opts.Compiler)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SHADERTOOLS_COMPILER", "glslc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "glslc", cfg.Compiler)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Compiler:    "glslangValidator",
		Translator:  "naga",
		LineEndings: "auto",
		LogLevel:    "debug",
	}
	require.NoError(t, cfg.Validate())

	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())

	cfg.LogLevel = "info"
	cfg.LineEndings = "lf"
	require.Error(t, cfg.Validate())

	cfg.LineEndings = "keep"
	cfg.Translator = ""
	require.Error(t, cfg.Validate())
}

func TestResourceLink(t *testing.T) {
	cfg := &Config{ResourceDir: "assets", LinkTarget: "out/res"}

	link := cfg.ResourceLink("/project")
	assert.Equal(t, "assets", link.Source)
	assert.Equal(t, "out/res", link.Target)
}
