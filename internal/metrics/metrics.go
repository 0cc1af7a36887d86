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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Redemption Metrics
var (
	RedemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRedemptionsTotal,
			Help: HelpTextRedemptionsTotal,
		},
		[]string{LabelOutcome, LabelReason},
	)

	RedemptionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRedemptionDuration,
			Help:    HelpTextRedemptionDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelOutcome},
	)

	ItemsRedeemed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsRedeemed,
			Help: HelpTextItemsRedeemed,
		},
		[]string{LabelItem},
	)

	ScansDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScansDropped,
			Help: HelpTextScansDropped,
		},
		[]string{LabelReason},
	)

	ProfilesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProfilesCreated,
			Help: HelpTextProfilesCreated,
		},
	)
)
