package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/paranoixa/paranoixa/build-tools/pkg/reslink"
	"github.com/paranoixa/paranoixa/build-tools/pkg/shaders"
)

// DefaultFile is looked up in the working directory.
const DefaultFile = "shadertools.toml"

// Config describes all configuration options
type Config struct {
	Compiler    string `default:"glslangValidator" usage:"SPIR-V compiler executable"`
	Translator  string `default:"naga" usage:"WGSL translator executable"`
	TargetEnv   string `default:"vulkan1.0" usage:"Target environment passed to the SPIR-V compiler"`
	LineEndings string `default:"auto" usage:"Rewrite WGSL output with CRLF (auto, crlf or keep)"`
	FailFast    bool   `default:"false" usage:"Stop at the first failed tool invocation"`
	LogLevel    string `default:"info" usage:"Log level (debug, info, warn, error)"`
	ResourceDir string `default:"test/res" usage:"Resource directory, relative to the project root"`
	LinkTarget  string `default:"build/source/phonon/res" usage:"Link path inside the build tree, relative to the project root"`
}

var logLevels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object.
// Values are read from the passed toml files and SHADERTOOLS_* environment variables.
func Loader(files ...string) (*Config, *aconfig.Loader) {
	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHADERTOOLS",
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load reads the configuration and validates it.
func Load(files ...string) (*Config, error) {
	cfg, loader := Loader(files...)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrap(err, "Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return eris.Errorf(`Invalid value for log level: %s`, cfg.LogLevel)
	}

	if _, err := shaders.ParseLineEndings(cfg.LineEndings); err != nil {
		return err
	}

	if cfg.Compiler == "" {
		return eris.New(`The compiler can't be empty`)
	}

	if cfg.Translator == "" {
		return eris.New(`The translator can't be empty`)
	}

	return nil
}

// Level converts the LogLevel field to a zerolog.Level
func (cfg *Config) Level() zerolog.Level {
	return logLevels[cfg.LogLevel]
}

// ConverterOptions maps the config onto shader converter options.
func (cfg *Config) ConverterOptions() shaders.Options {
	mode, _ := shaders.ParseLineEndings(cfg.LineEndings)

	return shaders.Options{
		Compiler:    cfg.Compiler,
		Translator:  cfg.Translator,
		TargetEnv:   cfg.TargetEnv,
		LineEndings: mode,
		FailFast:    cfg.FailFast,
	}
}

// ResourceLink returns the resource link for the project at root.
func (cfg *Config) ResourceLink(root string) *reslink.Link {
	link := reslink.New(root)
	if cfg.ResourceDir != "" {
		link.Source = cfg.ResourceDir
	}
	if cfg.LinkTarget != "" {
		link.Target = cfg.LinkTarget
	}

	return link
}
