package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
)

type metrics struct {
	registry    *prometheus.Registry
	renders     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	previewHits prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "logintheme",
				Name:      "renders_total",
				Help:      "Rendered pages by page and outcome",
			}, []string{"page", "outcome"}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "logintheme",
				Name:      "render_duration_seconds",
				Help:      "Time spent rendering a page",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			}, []string{"page"}),
		previewHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logintheme",
				Name:      "preview_cache_hits_total",
				Help:      "Previews served from the cache",
			}),
	}
	m.registry.MustRegister(
		m.renders,
		m.duration,
		m.previewHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// pageLabel keeps the label set closed: pages without a dedicated renderer share one value
func pageLabel(pageID string) string {
	switch logintheme.PageID(pageID) {
	case logintheme.PageLogin, logintheme.PageRegister:
		return pageID
	}
	return "default"
}

func (m *metrics) observe(pageID string, err error, took time.Duration) {
	page := pageLabel(pageID)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if known, ok := errors.Lookup(err); ok {
			outcome = known.Error()
		}
	}
	m.renders.WithLabelValues(page, outcome).Inc()
	m.duration.WithLabelValues(page).Observe(took.Seconds())
}
