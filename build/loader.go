package build

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"fryc/common"

	"github.com/pkg/errors"
)

// SourceLoader gives the compiler access to source files.
type SourceLoader interface {
	// ReadFile returns the text of the file at an absolute path.
	ReadFile(absPath string) (string, error)

	// JoinInclude returns the path of an included file relative to a
	// directory.  The source file extension is appended.
	JoinInclude(dir, name string) string

	// Exists reports whether a file exists.
	Exists(absPath string) bool
}

// OSLoader loads sources from the file system.
type OSLoader struct{}

func (OSLoader) ReadFile(absPath string) (string, error) {
	buff, err := ioutil.ReadFile(absPath)
	if err != nil {
		return "", errors.Wrapf(err, "reading source file %s", absPath)
	}

	return string(buff), nil
}

func (OSLoader) JoinInclude(dir, name string) string {
	return filepath.Join(dir, filepath.FromSlash(name)+common.FryFileExt)
}

func (OSLoader) Exists(absPath string) bool {
	finfo, err := os.Stat(absPath)
	return err == nil && !finfo.IsDir()
}

// MapLoader serves sources from memory.  Paths use forward slashes.
type MapLoader map[string]string

func (ml MapLoader) ReadFile(absPath string) (string, error) {
	src, ok := ml[absPath]
	if !ok {
		return "", errors.Errorf("no source file at %s", absPath)
	}

	return src, nil
}

func (ml MapLoader) JoinInclude(dir, name string) string {
	return filepath.ToSlash(filepath.Join(dir, name+common.FryFileExt))
}

func (ml MapLoader) Exists(absPath string) bool {
	_, ok := ml[absPath]
	return ok
}
