package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_logins_total",
			Help: "Total number of completed identity provider callbacks",
		},
		[]string{"result"},
	)

	ClicksEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_clicks_emitted_total",
			Help: "Total number of click events accepted by the click logger",
		},
	)

	ClicksDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_clicks_dropped_total",
			Help: "Total number of click events dropped because the click buffer was full",
		},
	)

	ClicksDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_clicks_deduplicated_total",
			Help: "Total number of click events suppressed inside the dedup window",
		},
	)

	ClickSinkWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_click_sink_writes_total",
			Help: "Total number of click events written per sink",
		},
		[]string{"sink"},
	)

	ClickSinkErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_click_sink_errors_total",
			Help: "Total number of failed click writes per sink",
		},
		[]string{"sink"},
	)

	ClickSinkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_click_sink_duration_seconds",
			Help:    "Time to write a click event to a sink",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"sink"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_cache_operation_duration_seconds",
			Help:    "Time to complete click cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache_name"},
	)

	CacheItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: Namespace + "_cache_items_total",
			Help: "Current number of items in the click cache",
		},
		[]string{"cache_name"},
	)
)
