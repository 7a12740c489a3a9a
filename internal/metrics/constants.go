package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every business metric
const Namespace = "bossforge"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNamePhaseCompletions    = "phase_completions_total"
	MetricNameBattles             = "battles_total"
	MetricNameAchievementsGranted = "achievements_granted_total"
	MetricNameCoinsAwarded        = "coins_awarded_total"
	MetricNameExperienceAwarded   = "experience_awarded_total"
	MetricNameRewardApplyRetries  = "reward_apply_retries_total"
	MetricNameAccessDenied        = "access_denied_total"
	MetricNameInventoryChanges    = "inventory_changes_total"
	MetricNameRewardApplyDuration = "reward_apply_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextPhaseCompletions    = "Phase completion requests by status (new, already_completed)"
	HelpTextBattles             = "Recorded battles by result"
	HelpTextAchievementsGranted = "Total number of achievement grants"
	HelpTextCoinsAwarded        = "Total coins awarded by the progression engine"
	HelpTextExperienceAwarded   = "Total experience awarded by the progression engine"
	HelpTextRewardApplyRetries  = "Reward transactions retried after a uniqueness conflict"
	HelpTextAccessDenied        = "Requests denied by the access guard, by reason"
	HelpTextInventoryChanges    = "Inventory mutations by direction (acquired, removed)"
	HelpTextRewardApplyDuration = "Reward transaction latency in seconds, including retries"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelResult    = "result"
	LabelReason    = "reason"
	LabelDirection = "direction"
	LabelKind      = "kind"
)

// Label values
const (
	StatusNew              = "new"
	StatusAlreadyCompleted = "already_completed"
	DirectionAcquired      = "acquired"
	DirectionRemoved       = "removed"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
