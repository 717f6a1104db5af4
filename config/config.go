// Package config holds the settings of the demo. Every field has a default,
// the YAML file only needs to name what it changes.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	SourceBundle   = "bundle"
	SourceDir      = "dir"
	SourceEmbedded = "embedded"
)

type Config struct {
	Window          Window     `yaml:"window"`
	GL              GL         `yaml:"gl"`
	FramesPerSecond int        `yaml:"frames_per_second"`
	ClearColor      [4]float32 `yaml:"clear_color"`
	Shaders         Shaders    `yaml:"shaders"`
	Bindings        Bindings   `yaml:"bindings"`
	Mesh            Mesh       `yaml:"mesh"`
	Metrics         Metrics    `yaml:"metrics"`
	Verbosity       int        `yaml:"verbosity"`
}

type Window struct {
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// GL describes the context requested from SDL.
type GL struct {
	Major       int  `yaml:"major"`
	Minor       int  `yaml:"minor"`
	DepthBits   int  `yaml:"depth_bits"`
	Multisample int  `yaml:"multisample"`
	VSync       bool `yaml:"vsync"`
	CheckErrors bool `yaml:"check_errors"`
}

type Shaders struct {
	Source    string `yaml:"source"`
	Dir       string `yaml:"dir"`
	Vertex    string `yaml:"vertex"`
	Fragment  string `yaml:"fragment"`
	Extension string `yaml:"extension"`
	Fallback  bool   `yaml:"fallback"`
	Watch     bool   `yaml:"watch"`
}

type Bindings struct {
	Position   string `yaml:"position"`
	Color      string `yaml:"color"`
	Projection string `yaml:"projection"`
	Strict     bool   `yaml:"strict"`
}

type Mesh struct {
	STL string `yaml:"stl"`
}

type Metrics struct {
	Addr string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Title:     "Iso",
			Width:     1024,
			Height:    768,
			Resizable: true,
		},
		GL: GL{
			Major:       3,
			Minor:       0,
			DepthBits:   16,
			Multisample: 4,
			VSync:       true,
			CheckErrors: true,
		},
		FramesPerSecond: 30,
		ClearColor:      [4]float32{1, 1, 1, 1},
		Shaders: Shaders{
			Source:    SourceBundle,
			Vertex:    "SimpleVertex",
			Fragment:  "SimpleFragment",
			Extension: ".glsl",
			Fallback:  true,
		},
		Bindings: Bindings{
			Position:   "Position",
			Color:      "SourceColor",
			Projection: "Projection",
			Strict:     true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.FramesPerSecond < 0 {
		errs = append(errs, fmt.Errorf("frames_per_second %d must not be negative", c.FramesPerSecond))
	}
	switch c.Shaders.Source {
	case SourceBundle, SourceEmbedded:
	case SourceDir:
		if c.Shaders.Dir == "" {
			errs = append(errs, errors.New("shaders.dir is required for source \"dir\""))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown shaders.source %q", c.Shaders.Source))
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		errs = append(errs, errors.New("shaders.vertex and shaders.fragment must be set"))
	}
	if c.GL.Major < 2 {
		errs = append(errs, fmt.Errorf("gl.major %d: at least OpenGL ES 2 is required", c.GL.Major))
	}
	return errors.Join(errs...)
}
