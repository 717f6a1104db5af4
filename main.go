package main

import (
	"flag"
	"os"
	"runtime"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	"iso_gl/config"
	"iso_gl/model"
	"iso_gl/renderer"
	"iso_gl/stl"
)

const PROGRAM_NAME = "Iso"
const VERSION = "0.3.0"

const usage = `Iso, a rotating and breathing mesh drawn with OpenGL ES.

Usage:
  iso_gl [--config=<path>] [--stl=<path>] [--shaders=<dir>] [--watch] [--fps=<n>] [--metrics=<addr>] [--verbosity=<n>]
  iso_gl -h | --help
  iso_gl --version

Options:
  -h --help             Show this screen.
  --version             Show version.
  --config=<path>       YAML configuration file.
  --stl=<path>          Draw a binary STL model instead of the built-in mesh.
  --shaders=<dir>       Read shaders from this directory instead of the app bundle.
  --watch               Reload the shaders when their files change.
  --fps=<n>             Target frames per second.
  --metrics=<addr>      Serve Prometheus metrics on this address, e.g. :9090.
  -v --verbosity=<n>    Log verbosity.`

func init() {
	// SDL events and window calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], VERSION)
	if err != nil {
		panic(err)
	}

	flag.Set("logtostderr", "true")
	defer glog.Flush()

	cfgPath, _ := opts.String("--config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		glog.Exitf("%v", err)
	}
	if err := applyArgs(cfg, opts); err != nil {
		glog.Exitf("%v", err)
	}

	flag.Set("v", strconv.Itoa(cfg.Verbosity))

	glog.Infof("Starting %s %s using GoLang: [%s]", PROGRAM_NAME, VERSION, runtime.Version())

	mesh, err := loadMesh(cfg)
	if err != nil {
		glog.Exitf("%v", err)
	}

	core, err := NewRenderCore(cfg)
	if err != nil {
		glog.Exitf("%v", err)
	}
	if err := core.Initialize(mesh); err != nil {
		core.destroy()
		// A mesh or shader that cannot be drawn leaves nothing to show.
		renderer.Abort(err)
		return
	}
	core.Loop()
	core.destroy()
}

// applyArgs overrides cfg with the command line options that were given.
func applyArgs(cfg *config.Config, opts docopt.Opts) error {
	if path, err := opts.String("--stl"); err == nil && path != "" {
		cfg.Mesh.STL = path
	}
	if dir, err := opts.String("--shaders"); err == nil && dir != "" {
		cfg.Shaders.Source = config.SourceDir
		cfg.Shaders.Dir = dir
	}
	if watch, _ := opts.Bool("--watch"); watch {
		cfg.Shaders.Watch = true
	}
	if opts["--fps"] != nil {
		fps, err := opts.Int("--fps")
		if err != nil {
			return err
		}
		cfg.FramesPerSecond = fps
	}
	if addr, err := opts.String("--metrics"); err == nil && addr != "" {
		cfg.Metrics.Addr = addr
	}
	if opts["--verbosity"] != nil {
		v, err := opts.Int("--verbosity")
		if err != nil {
			return err
		}
		cfg.Verbosity = v
	}
	return cfg.Validate()
}

func loadMesh(cfg *config.Config) (*model.Mesh, error) {
	if cfg.Mesh.STL == "" {
		return model.NewDemoMesh(), nil
	}
	return stl.ReadStlFile(cfg.Mesh.STL)
}
