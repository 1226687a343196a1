package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	LootGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootGenerated,
			Help: HelpTextLootGenerated,
		},
		[]string{LabelRarity, LabelSlot},
	)

	AffixesRolled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAffixesRolled,
			Help: HelpTextAffixesRolled,
		},
		[]string{LabelKind},
	)

	MapsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMapsParsed,
			Help: HelpTextMapsParsed,
		},
		[]string{LabelResult},
	)

	MapsPopulated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMapsPopulated,
			Help: HelpTextMapsPopulated,
		},
	)

	MapParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameMapParseDuration,
			Help:    HelpTextMapParseDuration,
			Buckets: MapParseLatencyBuckets,
		},
	)

	MapCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMapCacheHits,
			Help: HelpTextMapCacheHits,
		},
	)

	MapCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMapCacheMisses,
			Help: HelpTextMapCacheMisses,
		},
	)
)
