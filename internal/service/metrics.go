package service

import "github.com/prometheus/client_golang/prometheus"

const namespace = "ngramcorrector"

type metrics struct {
	requests *prometheus.CounterVec
	cache    *prometheus.CounterVec
	reloads  *prometheus.CounterVec
	latency  prometheus.Histogram
	words    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Correction cache lookups by result.",
		}, []string{"result"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Model reloads by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "correction_duration_seconds",
			Help:      "Time spent searching for candidates of one word.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		words: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lexicon_words",
			Help:      "Words in the serving lexicon.",
		}),
	}
	reg.MustRegister(m.requests, m.cache, m.reloads, m.latency, m.words)
	return m
}
