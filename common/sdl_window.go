package common

import (
	"fmt"
	"image"

	"github.com/golang/glog"
	"github.com/veandco/go-sdl2/sdl"
)

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

// ContextError is returned when SDL cannot create or activate the GL context.
type ContextError struct {
	Op  string
	Err error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("failed to %s OpenGL ES context: %v", e.Op, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// WindowOptions are the drawable properties requested from SDL: RGBA8888 color,
// a depth buffer, optional multisampling and the OpenGL ES version.
type WindowOptions struct {
	Title       string
	Width       int32
	Height      int32
	Resizable   bool
	Major       int
	Minor       int
	DepthBits   int
	Multisample int
	VSync       bool
}

// Window encapsulates the SDL window and its OpenGL ES context. The context is
// created current on the calling thread; hand it to a GLThread with Detach.
type Window struct {
	sdlVersion string

	Win       *sdl.Window
	Ctx       sdl.GLContext
	Resized   bool
	Minimized bool
	Close     bool
}

// NewWindow initializes SDL video, sets the GL attributes and creates the
// window and its context. On tear down, Destroy removes context and window.
func NewWindow(opts WindowOptions) (*Window, error) {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initialize SDL: %w", err)
	}
	glog.Infof("Initialized SDL %s", window.sdlVersion)

	if err := setGLAttributes(opts); err != nil {
		sdl.Quit()
		return nil, err
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if opts.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	win, err := sdl.CreateWindow(
		opts.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		opts.Width,
		opts.Height,
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create SDL window: %w", err)
	}
	glog.Infof("Created SDL window for use with OpenGL ES %d.%d. Title: \"%s\", Width: %d, Height: %d",
		opts.Major, opts.Minor, opts.Title, opts.Width, opts.Height)
	window.Win = win

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, &ContextError{Op: "create", Err: err}
	}
	window.Ctx = ctx

	interval := 0
	if opts.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		glog.Warningf("Could not set swap interval %d: %v", interval, err)
	}
	return window, nil
}

func setGLAttributes(opts WindowOptions) error {
	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_PROFILE_MASK, int(sdl.GL_CONTEXT_PROFILE_ES)},
		{sdl.GL_CONTEXT_MAJOR_VERSION, opts.Major},
		{sdl.GL_CONTEXT_MINOR_VERSION, opts.Minor},
		{sdl.GL_RED_SIZE, 8},
		{sdl.GL_GREEN_SIZE, 8},
		{sdl.GL_BLUE_SIZE, 8},
		{sdl.GL_ALPHA_SIZE, 8},
		{sdl.GL_DEPTH_SIZE, opts.DepthBits},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	if opts.Multisample > 0 {
		attrs = append(attrs,
			struct {
				attr  sdl.GLattr
				value int
			}{sdl.GL_MULTISAMPLEBUFFERS, 1},
			struct {
				attr  sdl.GLattr
				value int
			}{sdl.GL_MULTISAMPLESAMPLES, opts.Multisample},
		)
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("set GL attribute %d=%d: %w", a.attr, a.value, err)
		}
	}
	return nil
}

// MakeCurrent activates the context on the calling OS thread.
func (w *Window) MakeCurrent() error {
	if err := w.Win.GLMakeCurrent(w.Ctx); err != nil {
		return &ContextError{Op: "activate", Err: err}
	}
	return nil
}

// Detach releases the context from the calling thread so another thread can
// make it current.
func (w *Window) Detach() error {
	if err := w.Win.GLMakeCurrent(nil); err != nil {
		return &ContextError{Op: "release", Err: err}
	}
	return nil
}

// DrawableRect is the drawable area in pixels, which differs from the window
// size on high density displays.
func (w *Window) DrawableRect() image.Rectangle {
	dw, dh := w.Win.GLGetDrawableSize()
	return image.Rect(0, 0, int(dw), int(dh))
}

// Destroy tears down the GL context, the window and SDL.
func (w *Window) Destroy() {
	sdl.GLDeleteContext(w.Ctx)
	if err := w.Win.Destroy(); err != nil {
		glog.Errorf("Failed to destroy SDL window: %v", err)
	}
	sdl.Quit()
}
