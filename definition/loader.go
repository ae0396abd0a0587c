package definition

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kbukum/fnkit/errors"
)

// Loader loads definitions by name.
type Loader interface {
	Load(name string) (*Definition, error)
}

var extensions = []string{".yaml", ".yml", ".json"}

// FileLoader loads definitions from files on disk.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches dirs, in order, for
// {name}.yaml, {name}.yml or {name}.json, directly or one directory down.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load returns the first matching definition. A file that exists but does
// not parse is an error, not a miss.
func (l *FileLoader) Load(name string) (*Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if fileExists(path) {
				return LoadFile(path)
			}

			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			if len(matches) > 0 {
				return LoadFile(matches[0])
			}
		}
	}
	return nil, errors.NotFound("definition", name).WithDetail("dirs", l.dirs)
}

// LoadFile reads and parses one definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound("definition file", path).WithCause(err)
		}
		return nil, errors.Internal(err).WithDetail("path", path)
	}
	d, err := Parse(data)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr.WithDetail("path", path)
		}
		return nil, err
	}
	return d, nil
}

// MapLoader serves definitions from memory.
type MapLoader map[string]*Definition

// Load returns the definition registered under name.
func (m MapLoader) Load(name string) (*Definition, error) {
	if d, ok := m[name]; ok {
		return d, nil
	}
	return nil, errors.NotFound("definition", name)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
