package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/golang/glog"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/mobile/gl"

	"iso_gl/assets"
	"iso_gl/common"
	"iso_gl/config"
	"iso_gl/frame"
	"iso_gl/model"
	"iso_gl/renderer"
	"iso_gl/stats"
	vm "iso_gl/vector_math"
)

type Core struct {
	cfg *config.Config

	// OS/Window level
	win    *common.Window
	thread *common.GLThread
	glctx  gl.Context

	// Drawing level
	session *renderer.Session
	watcher *renderer.ShaderWatcher

	// Frame level
	clock   *frame.Clock
	pacer   *frame.Pacer
	frames  int
	metrics *http.Server
}

// NewRenderCore opens the window and starts the GL thread. Nothing is drawn
// before Initialize.
func NewRenderCore(cfg *config.Config) (*Core, error) {
	win, err := common.NewWindow(common.WindowOptions{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Resizable:   cfg.Window.Resizable,
		Major:       cfg.GL.Major,
		Minor:       cfg.GL.Minor,
		DepthBits:   cfg.GL.DepthBits,
		Multisample: cfg.GL.Multisample,
		VSync:       cfg.GL.VSync,
	})
	if err != nil {
		return nil, err
	}
	thread, glctx, err := common.StartGLThread(win)
	if err != nil {
		win.Destroy()
		return nil, err
	}
	return &Core{
		cfg:    cfg,
		win:    win,
		thread: thread,
		glctx:  glctx,
		clock:  frame.NewClock(),
		pacer:  frame.NewPacer(cfg.FramesPerSecond),
	}, nil
}

// Initialize builds the render session for mesh. A shader source that fails
// to bootstrap is retried once against the embedded shaders when fallback is
// enabled.
func (c *Core) Initialize(mesh *model.Mesh) error {
	opts := renderOptions(c.cfg)
	src := shaderSource(c.cfg.Shaders)

	session, err := renderer.NewSession(c.glctx, src, mesh, opts)
	if err != nil && c.cfg.Shaders.Fallback && c.cfg.Shaders.Source != config.SourceEmbedded && recoverable(err) {
		glog.Warningf("Shaders from %s unusable (%v), falling back to embedded shaders", src, err)
		session, err = renderer.NewSession(c.glctx, embeddedSource(), mesh, opts)
	}
	if err != nil {
		return err
	}
	c.session = session

	if c.cfg.Shaders.Watch {
		if dir, ok := watchDir(c.cfg.Shaders); ok {
			c.watcher, err = renderer.WatchShaders(dir, c.cfg.Shaders.Extension, c.cfg.Shaders.Vertex, c.cfg.Shaders.Fragment)
			if err != nil {
				glog.Warningf("Shader hot reload disabled: %v", err)
			}
		} else {
			glog.Warningf("Shader hot reload needs a shader directory, source %q has none", c.cfg.Shaders.Source)
		}
	}
	if c.cfg.Metrics.Addr != "" {
		c.metrics = stats.Serve(c.cfg.Metrics.Addr)
	}
	return nil
}

// Loop is the event loop for user interaction and the per frame update and
// draw. It does not render while minimized, and closes on the window close
// button or the ESC key.
func (c *Core) Loop() {
	c.win.Close = false
	c.clock.Resume()
	for !c.win.Close {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			c.handleEvent(event)
		}
		if c.win.Close {
			break
		}
		if c.win.Minimized {
			// Sleep until new events change c.win.Minimized
			sdl.WaitEvent()
			continue
		}
		c.reloadChangedShaders()
		c.drawFrame()
	}
	glog.Infof("Drew %d frames", c.frames)
}

func (c *Core) handleEvent(event sdl.Event) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		c.win.Close = true
	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			c.win.Resized = true
		case sdl.WINDOWEVENT_MINIMIZED:
			c.win.Minimized = true
			c.clock.Pause()
		case sdl.WINDOWEVENT_RESTORED:
			if c.win.Minimized {
				c.win.Minimized = false
				c.clock.Resume()
			}
		}
	case *sdl.KeyboardEvent:
		if ev.Keysym.Sym == sdl.K_ESCAPE {
			c.win.Close = true
		}
	}
}

func (c *Core) drawFrame() {
	c.pacer.Begin()

	viewport := c.win.DrawableRect()
	if c.win.Resized {
		glog.V(1).Infof("Drawable resized to %v", viewport.Size())
		c.win.Resized = false
	}
	c.session.Update(c.clock.Seconds())
	m := c.session.Draw(viewport)
	if glog.V(3) {
		glog.Infof("Frame %d projection:\n%s", c.frames, m.ToString())
	}
	if c.cfg.GL.CheckErrors {
		if err := renderer.CheckError(c.glctx); err != nil {
			glog.Errorf("Frame %d: %v", c.frames, err)
			stats.GLError(err)
		}
	}
	c.thread.Swap()
	c.frames++
	stats.FrameDrawn(c.pacer.Elapsed())

	if rest := c.pacer.Remaining(); rest > 0 {
		sdl.Delay(uint32(rest.Milliseconds()))
	}
}

func (c *Core) reloadChangedShaders() {
	if c.watcher == nil {
		return
	}
	select {
	case name := <-c.watcher.Changed():
		glog.Infof("Shader %s changed, reloading", name)
		c.reloadShaders()
	default:
	}
}

// reloadShaders rebuilds the program from the configured source, which is
// the one being watched. After a fallback the session still runs on the
// embedded shaders until the edited files compile.
func (c *Core) reloadShaders() error {
	err := c.session.Reload(shaderSource(c.cfg.Shaders))
	if err != nil {
		glog.Errorf("Keeping previous shader program: %v", err)
	}
	stats.ShaderReload(err)
	return err
}

func (c *Core) destroy() {
	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			glog.Warningf("Closing shader watcher: %v", err)
		}
	}
	if c.session != nil {
		c.session.Release()
	}
	c.thread.Stop()
	c.win.Destroy()
	if c.metrics != nil {
		if err := c.metrics.Close(); err != nil {
			glog.Warningf("Closing metrics server: %v", err)
		}
	}
}

// renderOptions maps the configuration onto the session options.
func renderOptions(cfg *config.Config) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.Program = renderer.ProgramOptions{
		Vertex:   cfg.Shaders.Vertex,
		Fragment: cfg.Shaders.Fragment,
		Bindings: renderer.BindingNames{
			Position:   cfg.Bindings.Position,
			Color:      cfg.Bindings.Color,
			Projection: cfg.Bindings.Projection,
		},
		Strict: cfg.Bindings.Strict,
	}
	opts.IndexWidth = model.IndexWidthFor(cfg.GL.Major)
	cc := cfg.ClearColor
	opts.ClearColor = vm.NewColor(cc[0], cc[1], cc[2], cc[3])
	return opts
}

func shaderSource(cfg config.Shaders) renderer.ShaderSource {
	switch cfg.Source {
	case config.SourceDir:
		return renderer.FSSource{FS: os.DirFS(cfg.Dir), Ext: cfg.Extension, Label: "directory " + cfg.Dir}
	case config.SourceEmbedded:
		return embeddedSource()
	default:
		return renderer.AssetSource{Ext: cfg.Extension}
	}
}

func embeddedSource() renderer.ShaderSource {
	// The embedded files always use the default extension.
	return renderer.FSSource{FS: assets.Shaders, Ext: renderer.ShaderExt, Label: "embedded shaders"}
}

// watchDir is the directory on disk the shaders of cfg are read from.
func watchDir(cfg config.Shaders) (string, bool) {
	switch cfg.Source {
	case config.SourceDir:
		return cfg.Dir, true
	case config.SourceBundle:
		return "assets", true
	default:
		return "", false
	}
}

// recoverable reports whether another shader source could fix err. Mesh
// errors are not.
func recoverable(err error) bool {
	var (
		notFound *renderer.ShaderNotFoundError
		compile  *renderer.CompileError
		link     *renderer.LinkError
		binding  *renderer.BindingError
	)
	return errors.As(err, &notFound) || errors.As(err, &compile) || errors.As(err, &link) || errors.As(err, &binding)
}
