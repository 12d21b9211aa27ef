// Package metrics provides Prometheus metrics for the narrative renderer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SlideTransitionsTotal counts slide transitions by target slide and outcome.
	SlideTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "narrative",
			Name:      "slide_transitions_total",
			Help:      "Total number of slide transitions",
		},
		[]string{"slide", "status"},
	)

	// RenderDuration measures a full slide render pass.
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "narrative",
			Name:      "render_duration_seconds",
			Help:      "Duration of slide render passes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"slide"},
	)

	// TransitionsWaiting reports requests queued behind an in-flight render.
	TransitionsWaiting = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "narrative",
			Name:      "transitions_waiting",
			Help:      "Slide transitions waiting for the current render to finish",
		},
	)

	// ImageExportsTotal counts raster exports by format and outcome.
	ImageExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "narrative",
			Name:      "image_exports_total",
			Help:      "Total number of PNG/JPEG exports",
		},
		[]string{"format", "status"},
	)
)

// Status returns the status label for err.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
