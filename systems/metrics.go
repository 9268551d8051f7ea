package systems

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/ecs"
)

// FrameMetrics exposes per-frame registry and collision statistics to Prometheus
type FrameMetrics struct {
	registry *prometheus.Registry

	frames      prometheus.Counter
	entities    prometheus.Gauge
	candidates  prometheus.Counter
	filtered    prometheus.Counter
	overlaps    prometheus.Counter
	resolutions prometheus.Counter
	frameTime   prometheus.Histogram
}

// NewFrameMetrics creates the metrics on a private registry
func NewFrameMetrics() *FrameMetrics {
	m := &FrameMetrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arctic",
			Name:      "frames_total",
			Help:      "Number of simulated frames.",
		}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arctic",
			Name:      "entities",
			Help:      "Entities in the registry during the last frame.",
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arctic",
			Subsystem: "collision",
			Name:      "candidate_pairs_total",
			Help:      "Pairs handed to the narrow phase by the sweep.",
		}),
		filtered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arctic",
			Subsystem: "collision",
			Name:      "filtered_pairs_total",
			Help:      "Pairs rejected by collide lists.",
		}),
		overlaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arctic",
			Subsystem: "collision",
			Name:      "overlaps_total",
			Help:      "Overlapping pairs found by the narrow phase.",
		}),
		resolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arctic",
			Subsystem: "collision",
			Name:      "resolutions_total",
			Help:      "Entity displacements applied to resolve overlaps.",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arctic",
			Name:      "update_duration_seconds",
			Help:      "Time spent in the registry update and collision pass.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}

	m.registry.MustRegister(
		m.frames,
		m.entities,
		m.candidates,
		m.filtered,
		m.overlaps,
		m.resolutions,
		m.frameTime,
	)
	return m
}

// Registry returns the Prometheus registry holding the metrics
func (m *FrameMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Frames returns the frame counter
func (m *FrameMetrics) Frames() prometheus.Counter {
	return m.frames
}

// Observe records one frame
func (m *FrameMetrics) Observe(stats ecs.CollisionStats, elapsed time.Duration) {
	m.frames.Inc()
	m.entities.Set(float64(stats.Entities))
	m.candidates.Add(float64(stats.Candidates))
	m.filtered.Add(float64(stats.Filtered))
	m.overlaps.Add(float64(stats.Overlaps))
	m.resolutions.Add(float64(stats.Resolutions))
	m.frameTime.Observe(elapsed.Seconds())
}

// StartHTTP serves /metrics on addr in the background
func (m *FrameMetrics) StartHTTP(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("prometheus endpoint listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("prometheus endpoint stopped", zap.Error(err))
		}
	}()

	return server
}
