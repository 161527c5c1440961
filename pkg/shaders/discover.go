package shaders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	vertexSuffix   = ".vert.glsl"
	fragmentSuffix = ".frag.glsl"
	sourceExt      = ".glsl"
	spirvExt       = ".spv"
	wgslExt        = ".wgsl"
)

// ErrNotDirectory is returned when discovery is pointed at something other than a directory.
var ErrNotDirectory = eris.New("not a directory")

// Kind is the shader stage derived from a file name.
type Kind int

const (
	Ignored Kind = iota
	Vertex
	Fragment
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "ignored"
	}
}

// Stage returns the glslangValidator stage name.
func (k Kind) Stage() string {
	switch k {
	case Vertex:
		return "vert"
	case Fragment:
		return "frag"
	default:
		return ""
	}
}

// Classify returns the kind of the given file name. Only the exact suffixes
// .vert.glsl and .frag.glsl are recognized.
func Classify(name string) Kind {
	switch {
	case strings.HasSuffix(name, vertexSuffix):
		return Vertex
	case strings.HasSuffix(name, fragmentSuffix):
		return Fragment
	default:
		return Ignored
	}
}

// Source is a discovered shader source file.
type Source struct {
	Dir  string
	Name string
	Kind Kind
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, sourceExt) + ext
}

// SPIRVName is the file name of the compiled binary (shader.vert.spv).
func (s Source) SPIRVName() string {
	return replaceExt(s.Name, spirvExt)
}

// WGSLName is the file name of the translated text (shader.vert.wgsl).
func (s Source) WGSLName() string {
	return replaceExt(s.Name, wgslExt)
}

func (s Source) Path() string {
	return filepath.Join(s.Dir, s.Name)
}

func (s Source) SPIRVPath() string {
	return filepath.Join(s.Dir, s.SPIRVName())
}

func (s Source) WGSLPath() string {
	return filepath.Join(s.Dir, s.WGSLName())
}

// Discovery holds the sources of a single directory listing, in listing order.
type Discovery struct {
	Dir      string
	Vertex   []Source
	Fragment []Source
}

// Empty reports whether no sources were found.
func (d *Discovery) Empty() bool {
	return len(d.Vertex) == 0 && len(d.Fragment) == 0
}

// All returns the vertex sources followed by the fragment sources.
func (d *Discovery) All() []Source {
	all := make([]Source, 0, len(d.Vertex)+len(d.Fragment))
	all = append(all, d.Vertex...)
	return append(all, d.Fragment...)
}

// Discover lists dir once and partitions the entries into vertex and fragment
// sources. Entries are kept in the order the OS returns them.
func Discover(dir string) (*Discovery, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "Could not find shader directory %s", dir)
	}

	if !info.IsDir() {
		return nil, eris.Wrapf(ErrNotDirectory, "%s", dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to open dir %s", dir)
	}

	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to read dir %s", dir)
	}

	result := &Discovery{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		src := Source{Dir: dir, Name: entry.Name(), Kind: Classify(entry.Name())}
		switch src.Kind {
		case Vertex:
			result.Vertex = append(result.Vertex, src)
		case Fragment:
			result.Fragment = append(result.Fragment, src)
		}
	}

	return result, nil
}
