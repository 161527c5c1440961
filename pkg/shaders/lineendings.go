package shaders

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
)

// LineEndings selects when translated WGSL files are rewritten.
type LineEndings string

const (
	// LineEndingsAuto rewrites to CRLF only when the target OS is Windows.
	LineEndingsAuto LineEndings = "auto"
	// LineEndingsCRLF always rewrites to CRLF.
	LineEndingsCRLF LineEndings = "crlf"
	// LineEndingsKeep never touches the translator output.
	LineEndingsKeep LineEndings = "keep"
)

const normalizeOS = "windows"

// ParseLineEndings validates a mode name. The empty string maps to LineEndingsAuto.
func ParseLineEndings(mode string) (LineEndings, error) {
	switch LineEndings(mode) {
	case "", LineEndingsAuto:
		return LineEndingsAuto, nil
	case LineEndingsCRLF, LineEndingsKeep:
		return LineEndings(mode), nil
	}

	return "", eris.Errorf("Invalid line ending mode %s (must be one of auto, crlf or keep)", mode)
}

// Applies reports whether files are rewritten when running on goos.
func (m LineEndings) Applies(goos string) bool {
	switch m {
	case LineEndingsCRLF:
		return true
	case LineEndingsKeep:
		return false
	default:
		return goos == normalizeOS
	}
}

// ToCRLF converts every line terminator (\r\n, \r or \n) to \r\n.
func ToCRLF(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n"))
}

// NormalizeFile rewrites path with CRLF line endings. The file is replaced
// through a temporary sibling so readers never see a partial file.
// It returns false if the content already used CRLF everywhere.
func NormalizeFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, eris.Wrapf(err, "Could not stat %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, eris.Wrapf(err, "Failed to read %s", path)
	}

	converted := ToCRLF(data)
	if bytes.Equal(converted, data) {
		return false, nil
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+nanoid.New()+".tmp")
	err = os.WriteFile(tmpPath, converted, info.Mode().Perm())
	if err != nil {
		os.Remove(tmpPath)
		return false, eris.Wrapf(err, "Failed to write %s", tmpPath)
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		os.Remove(tmpPath)
		return false, eris.Wrapf(err, "Failed to replace %s", path)
	}

	return true, nil
}
