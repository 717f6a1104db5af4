// Package stats exports render loop metrics for prometheus.
package stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var framesDrawn = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "iso_gl",
		Subsystem: "render",
		Name:      "frames_total",
		Help:      "Number of frames drawn",
	},
)

var frameSeconds = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "iso_gl",
		Subsystem: "render",
		Name:      "frame_seconds",
		Help:      "Time spent in update and draw per frame",
		Buckets:   []float64{0.001, 0.002, 0.005, 0.010, 0.0167, 0.0333, 0.050, 0.100, 0.250},
	},
)

var shaderReloads = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "iso_gl",
		Subsystem: "render",
		Name:      "shader_reloads_total",
		Help:      "Shader program rebuilds by result",
	},
	[]string{"result"},
)

var glErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "iso_gl",
		Subsystem: "render",
		Name:      "gl_errors_total",
		Help:      "GL errors seen by glGetError",
	},
	[]string{"code"},
)

func init() {
	prometheus.MustRegister(framesDrawn, frameSeconds, shaderReloads, glErrors)
}

// FrameDrawn records one frame and the time it took.
func FrameDrawn(d time.Duration) {
	framesDrawn.Inc()
	frameSeconds.Observe(d.Seconds())
}

func ShaderReload(err error) {
	if err != nil {
		shaderReloads.WithLabelValues("error").Inc()
	} else {
		shaderReloads.WithLabelValues("ok").Inc()
	}
}

func GLError(err error) {
	glErrors.WithLabelValues(err.Error()).Inc()
}

// Serve exposes /metrics on addr in the background. Close the returned server
// on shutdown.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		glog.Infof("Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("Metrics server stopped: %v", err)
		}
	}()
	return srv
}
