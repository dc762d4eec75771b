package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("no handler for file extension")

// Loader builds a scene from a stream.
type Loader interface {
	Ext() string
	Load(r io.Reader) (*SceneGraph, error)
}

// Saver writes a scene to a stream.
type Saver interface {
	Ext() string
	Save(w io.Writer, sg *SceneGraph) error
}

// Registry picks loaders and savers by lowercase file extension.
type Registry struct {
	loaders map[string]Loader
	savers  map[string]Saver
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader), savers: make(map[string]Saver)}
}

// DefaultRegistry knows every format in this package. binary selects the
// binary flavour of savers that have one.
func DefaultRegistry(binary bool) *Registry {
	r := NewRegistry()
	r.RegisterLoader(PLYLoader{})
	r.RegisterLoader(STLLoader{})
	r.RegisterLoader(DXFLoader{})
	r.RegisterSaver(PLYSaver{Binary: binary})
	r.RegisterSaver(STLSaver{Binary: binary})
	r.RegisterSaver(WRLSaver{})
	return r
}

func (r *Registry) RegisterLoader(l Loader) {
	r.loaders[strings.ToLower(l.Ext())] = l
}

func (r *Registry) RegisterSaver(s Saver) {
	r.savers[strings.ToLower(s.Ext())] = s
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Load opens fileName and reads it with the loader for its extension.
func (r *Registry) Load(fileName string) (*SceneGraph, error) {
	l, ok := r.loaders[extension(fileName)]
	if !ok {
		return nil, fmt.Errorf("could not load %s: %w", fileName, ErrUnknownFormat)
	}
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", fileName, err)
	}
	defer file.Close()

	sg, err := l.Load(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing file %s: %w", fileName, err)
	}
	return sg, nil
}

// Save writes sg to fileName with the saver for its extension.
func (r *Registry) Save(fileName string, sg *SceneGraph) error {
	s, ok := r.savers[extension(fileName)]
	if !ok {
		return fmt.Errorf("could not save %s: %w", fileName, ErrUnknownFormat)
	}
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create file %s: %w", fileName, err)
	}
	if err := s.Save(file, sg); err != nil {
		file.Close()
		return fmt.Errorf("error writing file %s: %w", fileName, err)
	}
	return file.Close()
}
