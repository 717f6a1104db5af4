package renderer

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// ShaderWatcher reports edits to shader files in a directory. The directory is
// watched instead of the files, editors often save by renaming over the original.
type ShaderWatcher struct {
	w       *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	done    chan struct{}
}

func WatchShaders(dir string, ext string, names ...string) (*ShaderWatcher, error) {
	if ext == "" {
		ext = ShaderExt
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	sw := &ShaderWatcher{
		w:       w,
		files:   make(map[string]bool, len(names)),
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	for _, n := range names {
		sw.files[n+ext] = true
	}
	go sw.run()
	glog.Infof("Watching %s for shader changes", dir)
	return sw, nil
}

// Changed delivers the file name of an edited shader. Bursts of events collapse
// into one pending notification.
func (sw *ShaderWatcher) Changed() <-chan string {
	return sw.changed
}

func (sw *ShaderWatcher) run() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.w.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if !sw.files[name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			glog.V(1).Infof("Shader file event: %v", event)
			select {
			case sw.changed <- name:
			default:
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			glog.Warningf("Shader watcher error: %v", err)
		}
	}
}

func (sw *ShaderWatcher) Close() error {
	err := sw.w.Close()
	<-sw.done
	return err
}
