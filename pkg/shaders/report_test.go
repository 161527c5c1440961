package shaders

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDiscoveryWrite(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.vert.glsl", "b.frag.glsl", "c.txt")

	disc, err := Discover(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, disc.Write(&buf, "yaml"))

	var doc discoveryDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, []string{"a.vert.glsl"}, doc.Vertex)
	assert.Equal(t, []string{"b.frag.glsl"}, doc.Fragment)

	buf.Reset()
	require.NoError(t, disc.Write(&buf, "json"))
	doc = discoveryDoc{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, dir, doc.Dir)

	require.Error(t, disc.Write(&buf, "xml"))
}

func TestReportWrite(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.vert.glsl")

	invoker := &fakeInvoker{fail: map[string]int{"a.vert.wgsl": 1}}
	report, err := NewConverter(invoker, Options{GOOS: "linux"}).Run(context.Background(), dir)
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, "yaml"))

	var doc reportDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, 1, doc.Failed)
	assert.Equal(t, ActionCompile, doc.Steps[0].Action)
	assert.Equal(t, "a.vert.spv", doc.Steps[0].Output)
	assert.Equal(t, "naga a.vert.glsl a.vert.wgsl", doc.Steps[1].Command)
	assert.Equal(t, 1, doc.Steps[1].ExitCode)
	assert.NotEmpty(t, doc.Steps[1].Error)
}
