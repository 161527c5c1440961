// Package reslink links the test resource directory into the build tree so
// that the test binaries find their shaders and assets next to them.
package reslink

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

const (
	DefaultSource = "test/res"
	DefaultTarget = "build/source/phonon/res"
)

// Link describes a symlink from Target to Source, both relative to Root.
type Link struct {
	Root   string
	Source string
	Target string
}

// New returns the default resource link for the project at root.
func New(root string) *Link {
	return &Link{
		Root:   root,
		Source: DefaultSource,
		Target: DefaultTarget,
	}
}

func (l *Link) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(l.Root, filepath.FromSlash(path))
}

// SourcePath is the absolute path of the resource directory.
func (l *Link) SourcePath() (string, error) {
	path, err := filepath.Abs(l.resolve(l.Source))
	if err != nil {
		return "", eris.Wrapf(err, "Failed to resolve %s", l.Source)
	}

	return path, nil
}

// TargetPath is the path of the link inside the build tree.
func (l *Link) TargetPath() string {
	return l.resolve(l.Target)
}

// Create creates the link unless something already exists at the target path,
// in which case nothing is changed and created is false. The check and the
// creation are not atomic.
func (l *Link) Create() (created bool, err error) {
	target := l.TargetPath()
	_, err = os.Lstat(target)
	if err == nil {
		return false, nil
	}

	if !eris.Is(err, os.ErrNotExist) {
		return false, eris.Wrapf(err, "Failed to check %s", target)
	}

	source, err := l.SourcePath()
	if err != nil {
		return false, err
	}

	err = os.MkdirAll(filepath.Dir(target), 0770)
	if err != nil {
		return false, eris.Wrapf(err, "Failed to create %s", filepath.Dir(target))
	}

	err = os.Symlink(source, target)
	if err != nil {
		return false, eris.Wrapf(err, "Failed to link %s to %s", target, source)
	}

	return true, nil
}
