package metrics

const (
	defaultMetricsEndpoint = "/metrics"
)

// Metric types
const (
	typeGauge     = "gauge"
	typeCounter   = "counter"
	typeHistogram = "histogram"
)

// Metric names and labels
const (
	prefix   = "invarch_bridge_"
	labelEnv = "env"

	prefixRequest        = prefix + "request_"
	metricRequestCount   = prefixRequest + "count"
	metricRequestLatency = prefixRequest + "latency_ms"
	labelMethod          = "method"
	labelIsSuccess       = "is_success"

	prefixOperation          = prefix + "operation_"
	metricOperationCount     = prefixOperation + "count"
	metricOperationsInFlight = prefixOperation + "in_flight"
	labelDirection           = "direction"
	labelStatus              = "status"

	prefixValidation            = prefix + "validation_"
	metricValidationFailedCount = prefixValidation + "failed_count"
	labelReason                 = "reason"

	prefixAssets             = prefix + "assets_"
	metricAssetsRefreshCount = prefixAssets + "refresh_count"
	metricAssetsCount        = prefixAssets + "count"
)
