package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameRedemptionsTotal   = "qrhunt_redemptions_total"
	MetricNameRedemptionDuration = "qrhunt_redemption_duration_seconds"
	MetricNameItemsRedeemed      = "qrhunt_items_redeemed_total"
	MetricNameScansDropped       = "qrhunt_scans_dropped_total"
	MetricNameProfilesCreated    = "qrhunt_profiles_created_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextEventsPublished      = "Total number of events published"
	HelpTextRedemptionsTotal     = "Redemption attempts by outcome and failure reason"
	HelpTextRedemptionDuration   = "Redemption latency in seconds by outcome"
	HelpTextItemsRedeemed        = "Items newly added to a collection"
	HelpTextScansDropped         = "Scanned payloads dropped by a scan session"
	HelpTextProfilesCreated      = "Member profiles created"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelItem    = "item"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
)

// ReasonNone is the reason label for outcomes that are not failures
const ReasonNone = "none"

// HTTPLatencyBuckets defines the histogram buckets for request and redemption
// durations in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Unexpected event payload"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
