package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func initMetrics(env string) {
	mutex.Lock()
	if !initialized {
		registerer = prometheus.DefaultRegisterer
		gauges = make(map[string]*prometheus.GaugeVec)
		counters = make(map[string]*prometheus.CounterVec)
		histograms = make(map[string]*prometheus.HistogramVec)
		initialized = true
	}
	mutex.Unlock()

	var constLabels prometheus.Labels
	if env != "" {
		constLabels = prometheus.Labels{labelEnv: env}
	}

	registerCounter(prometheus.CounterOpts{Name: metricRequestCount, ConstLabels: constLabels}, labelMethod, labelIsSuccess)
	registerHistogram(prometheus.HistogramOpts{Name: metricRequestLatency, ConstLabels: constLabels}, labelMethod, labelIsSuccess)
	registerCounter(prometheus.CounterOpts{Name: metricOperationCount, ConstLabels: constLabels}, labelDirection, labelStatus)
	registerGauge(prometheus.GaugeOpts{Name: metricOperationsInFlight, ConstLabels: constLabels})
	registerCounter(prometheus.CounterOpts{Name: metricValidationFailedCount, ConstLabels: constLabels}, labelReason)
	registerCounter(prometheus.CounterOpts{Name: metricAssetsRefreshCount, ConstLabels: constLabels}, labelIsSuccess)
	registerGauge(prometheus.GaugeOpts{Name: metricAssetsCount, ConstLabels: constLabels})
}

// RecordRequest increments the request count for the method
func RecordRequest(method string, isSuccess bool) {
	counterInc(metricRequestCount, map[string]string{labelMethod: method, labelIsSuccess: strconv.FormatBool(isSuccess)})
}

// RecordRequestLatency records the latency histogram in milliseconds
func RecordRequestLatency(method string, latency time.Duration, isSuccess bool) {
	histogramObserve(metricRequestLatency, float64(latency.Milliseconds()), map[string]string{labelMethod: method, labelIsSuccess: strconv.FormatBool(isSuccess)})
}

// RecordOperation counts a bridge operation reaching a terminal status
func RecordOperation(direction, status string) {
	counterInc(metricOperationCount, map[string]string{labelDirection: direction, labelStatus: status})
}

// SetOperationsInFlight sets the number of operations still being observed
func SetOperationsInFlight(n int) {
	gaugeSet(metricOperationsInFlight, float64(n), nil)
}

// RecordValidationFailure counts a rejected amount, reason is the message
// shown to the user
func RecordValidationFailure(reason string) {
	counterInc(metricValidationFailedCount, map[string]string{labelReason: reason})
}

// RecordAssetRefresh counts an asset registry refresh and records the number
// of known assets after a successful one
func RecordAssetRefresh(isSuccess bool, assets int) {
	counterInc(metricAssetsRefreshCount, map[string]string{labelIsSuccess: strconv.FormatBool(isSuccess)})
	if isSuccess {
		gaugeSet(metricAssetsCount, float64(assets), nil)
	}
}
