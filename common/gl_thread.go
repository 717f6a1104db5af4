package common

import (
	"runtime"

	"github.com/golang/glog"
	"golang.org/x/mobile/gl"
)

// GLThread owns the OS thread the GL context is current on. Every call made
// through the returned gl.Context is executed there, so the render loop may
// run on any goroutine. Blocking calls wait for the GL thread to answer.
type GLThread struct {
	win    *Window
	glctx  gl.Context
	worker gl.Worker

	swap    chan struct{}
	swapped chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// StartGLThread detaches the window's context from the caller and makes it
// current on a dedicated, locked goroutine.
func StartGLThread(win *Window) (*GLThread, gl.Context, error) {
	if err := win.Detach(); err != nil {
		return nil, nil, err
	}
	glctx, worker := gl.NewContext()
	t := &GLThread{
		win:     win,
		glctx:   glctx,
		worker:  worker,
		swap:    make(chan struct{}),
		swapped: make(chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	ready := make(chan error, 1)
	go t.run(ready)
	if err := <-ready; err != nil {
		<-t.done
		return nil, nil, err
	}
	glog.V(1).Info("GL thread running")
	return t, glctx, nil
}

func (t *GLThread) run(ready chan<- error) {
	// The thread stays locked: the context must not migrate with the goroutine.
	runtime.LockOSThread()
	defer close(t.done)

	if err := t.win.MakeCurrent(); err != nil {
		ready <- err
		return
	}
	ready <- nil

	workAvailable := t.worker.WorkAvailable()
	for {
		select {
		case <-workAvailable:
			t.worker.DoWork()
		case <-t.swap:
			t.win.Win.GLSwap()
			t.swapped <- struct{}{}
		case <-t.stop:
			if err := t.win.Detach(); err != nil {
				glog.Warningf("%v", err)
			}
			return
		}
	}
}

// Swap presents the back buffer once all queued GL calls have been executed.
func (t *GLThread) Swap() {
	// Flush is a blocking call, after it returns the queue is drained.
	t.glctx.Flush()
	t.swap <- struct{}{}
	<-t.swapped
}

// Stop ends the GL thread. Calls on the context afterwards block forever.
func (t *GLThread) Stop() {
	select {
	case <-t.done:
		return
	default:
	}
	close(t.stop)
	<-t.done
	glog.V(1).Info("GL thread stopped")
}
