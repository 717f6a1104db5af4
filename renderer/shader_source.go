package renderer

import (
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/mobile/asset"
)

// ShaderExt is the file type suffix appended to logical shader names.
const ShaderExt = ".glsl"

// ShaderSource locates shader text by logical name, e.g. "SimpleVertex".
type ShaderSource interface {
	ReadShader(name string) ([]byte, error)
	String() string
}

// AssetSource reads shaders from the application bundle. On desktop builds that
// is the assets directory next to the working directory, on mobile the packaged
// app assets.
type AssetSource struct {
	Ext string
}

func (s AssetSource) ReadShader(name string) ([]byte, error) {
	f, err := asset.Open(name + s.ext())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s AssetSource) String() string {
	return "app bundle"
}

func (s AssetSource) ext() string {
	if s.Ext == "" {
		return ShaderExt
	}
	return s.Ext
}

// FSSource reads shaders from any fs.FS, a directory on disk or the embedded assets.
type FSSource struct {
	FS    fs.FS
	Ext   string
	Label string
}

func (s FSSource) ReadShader(name string) ([]byte, error) {
	ext := s.Ext
	if ext == "" {
		ext = ShaderExt
	}
	return fs.ReadFile(s.FS, name+ext)
}

func (s FSSource) String() string {
	if s.Label != "" {
		return s.Label
	}
	return fmt.Sprintf("%T", s.FS)
}
