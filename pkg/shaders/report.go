package shaders

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/paranoixa/paranoixa/build-tools/pkg/shell"
)

type discoveryDoc struct {
	Dir      string   `yaml:"dir" json:"dir"`
	Vertex   []string `yaml:"vertex" json:"vertex"`
	Fragment []string `yaml:"fragment" json:"fragment"`
}

type stepDoc struct {
	Action   Action  `yaml:"action" json:"action"`
	Shader   string  `yaml:"shader" json:"shader"`
	Output   string  `yaml:"output" json:"output"`
	Command  string  `yaml:"command,omitempty" json:"command,omitempty"`
	ExitCode int     `yaml:"exitCode" json:"exitCode"`
	Seconds  float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`
	Error    string  `yaml:"error,omitempty" json:"error,omitempty"`
}

type reportDoc struct {
	Discovery discoveryDoc `yaml:"discovery" json:"discovery"`
	Steps     []stepDoc    `yaml:"steps" json:"steps"`
	Failed    int          `yaml:"failed" json:"failed"`
}

func (d *Discovery) doc() discoveryDoc {
	return discoveryDoc{
		Dir:      d.Dir,
		Vertex:   names(d.Vertex),
		Fragment: names(d.Fragment),
	}
}

func (r *Report) doc() reportDoc {
	doc := reportDoc{
		Steps: make([]stepDoc, len(r.Steps)),
	}
	if r.Discovery != nil {
		doc.Discovery = r.Discovery.doc()
	}

	for idx, step := range r.Steps {
		item := stepDoc{
			Action: step.Action,
			Shader: step.Source.Name,
			Output: step.Output,
		}

		if len(step.Args) > 0 {
			item.Command = shell.Format(step.Args...)
		}

		if step.Result != nil {
			item.ExitCode = step.Result.ExitCode
			item.Seconds = step.Result.Duration.Seconds()
		}

		if step.Err != nil {
			item.Error = step.Err.Error()
			doc.Failed++
		}

		doc.Steps[idx] = item
	}

	return doc
}

func encode(w io.Writer, format string, value interface{}) error {
	switch format {
	case "", "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return eris.Wrap(err, "failed to encode yaml")
		}

		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return eris.Wrap(err, "failed to encode json")
		}

		return nil
	}

	return eris.Errorf("unsupported format %s", format)
}

// Write renders the discovery result as yaml or json.
func (d *Discovery) Write(w io.Writer, format string) error {
	return encode(w, format, d.doc())
}

// Write renders the run report as yaml or json.
func (r *Report) Write(w io.Writer, format string) error {
	return encode(w, format, r.doc())
}
