package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// IntegrationCatalog - metrics prefix
	IntegrationCatalog = "integration_catalog"

	// PublishUploadCount - name of the metric counting accepted connector uploads
	PublishUploadCount = "publish_upload_count"
	// PublishDispatchFailureCount - name of the metric counting failed dispatch steps
	PublishDispatchFailureCount = "publish_dispatch_failure_count"
	// BuildCallbackCount - name of the metric counting build result callbacks
	BuildCallbackCount = "build_callback_count"
	// BuildCallbackReplayCount - name of the metric counting callbacks ignored as replays
	BuildCallbackReplayCount = "build_callback_replay_count"
	// PublishDuration - name of the metric observing upload-to-callback duration
	PublishDuration = "publish_duration_in_seconds"
	// DownloadRedirectCount - name of the metric counting bundle download redirects
	DownloadRedirectCount = "download_redirect_count"

	// ApiRequestCount - name of the metric counting API requests
	ApiRequestCount = "api_request_count"
	// ApiRequestDuration - name of the metric observing API request duration
	ApiRequestDuration = "api_request_duration_in_seconds"

	labelFramework = "framework"
	labelStep      = "step"
	labelResult    = "result"
	labelMethod    = "method"
	labelPath      = "path"
	labelCode      = "code"
)

// DispatchStep labels the source control and CI steps of a publish dispatch
type DispatchStep string

const (
	StepCreateProject DispatchStep = "create_project"
	StepCommitFiles   DispatchStep = "commit_files"
	StepTriggerBuild  DispatchStep = "trigger_build"
)

// BuildResult labels the terminal outcome reported by the CI callback
type BuildResult string

const (
	BuildSucceeded BuildResult = "success"
	BuildFailed    BuildResult = "failure"
)

var uploadCountMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: IntegrationCatalog,
		Name:      PublishUploadCount,
		Help:      "number of connector uploads accepted for publishing",
	},
	[]string{labelFramework},
)

// IncUploadCount increments the count of accepted uploads for a framework
func IncUploadCount(framework string) {
	uploadCountMetric.With(prometheus.Labels{labelFramework: framework}).Inc()
}

var dispatchFailureCountMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: IntegrationCatalog,
		Name:      PublishDispatchFailureCount,
		Help:      "number of publish dispatches that failed, by step",
	},
	[]string{labelStep},
)

// IncDispatchFailureCount increments the count of failed dispatch steps
func IncDispatchFailureCount(step DispatchStep) {
	dispatchFailureCountMetric.With(prometheus.Labels{labelStep: string(step)}).Inc()
}

var buildCallbackCountMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: IntegrationCatalog,
		Name:      BuildCallbackCount,
		Help:      "number of build result callbacks applied, by result",
	},
	[]string{labelResult},
)

// IncBuildCallbackCount increments the count of applied build callbacks
func IncBuildCallbackCount(result BuildResult) {
	buildCallbackCountMetric.With(prometheus.Labels{labelResult: string(result)}).Inc()
}

var buildCallbackReplayCountMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: IntegrationCatalog,
		Name:      BuildCallbackReplayCount,
		Help:      "number of build result callbacks ignored because the version already reached a terminal state",
	},
)

// IncBuildCallbackReplayCount increments the count of ignored duplicate callbacks
func IncBuildCallbackReplayCount() {
	buildCallbackReplayCountMetric.Inc()
}

var publishDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: IntegrationCatalog,
		Name:      PublishDuration,
		Help:      "seconds between upload acceptance and the build result callback",
		Buckets: []float64{
			30.0,
			60.0,
			120.0,
			300.0,
			600.0,
			1800.0,
			3600.0,
		},
	},
	[]string{labelResult},
)

// ObservePublishDuration records the elapsed time of a publish run
func ObservePublishDuration(result BuildResult, elapsed time.Duration) {
	publishDurationMetric.With(prometheus.Labels{labelResult: string(result)}).Observe(elapsed.Seconds())
}

var downloadRedirectCountMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: IntegrationCatalog,
		Name:      DownloadRedirectCount,
		Help:      "number of bundle download redirects issued",
	},
)

// IncDownloadRedirectCount increments the count of issued download redirects
func IncDownloadRedirectCount() {
	downloadRedirectCountMetric.Inc()
}

var requestCountMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: IntegrationCatalog,
		Name:      ApiRequestCount,
		Help:      "number of API requests served",
	},
	[]string{labelMethod, labelPath, labelCode},
)

var requestDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: IntegrationCatalog,
		Name:      ApiRequestDuration,
		Help:      "API request serving duration in seconds",
		Buckets: []float64{
			0.1,
			1.0,
			10.0,
			30.0,
		},
	},
	[]string{labelMethod, labelPath},
)

// ObserveApiRequest records one served API request
func ObserveApiRequest(method string, path string, code int, elapsed time.Duration) {
	requestCountMetric.With(prometheus.Labels{
		labelMethod: method,
		labelPath:   path,
		labelCode:   strconv.Itoa(code),
	}).Inc()
	requestDurationMetric.With(prometheus.Labels{
		labelMethod: method,
		labelPath:   path,
	}).Observe(elapsed.Seconds())
}

// MetricsMiddleware observes request counts and durations for every route
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		before := time.Now()
		next.ServeHTTP(recorder, r)
		ObserveApiRequest(r.Method, r.URL.Path, recorder.status, time.Since(before))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// register the metric(s)
func init() {
	prometheus.MustRegister(uploadCountMetric)
	prometheus.MustRegister(dispatchFailureCountMetric)
	prometheus.MustRegister(buildCallbackCountMetric)
	prometheus.MustRegister(buildCallbackReplayCountMetric)
	prometheus.MustRegister(publishDurationMetric)
	prometheus.MustRegister(downloadRedirectCountMetric)
	prometheus.MustRegister(requestCountMetric)
	prometheus.MustRegister(requestDurationMetric)
}

// Reset the metrics we have defined. It is defined for testing purposes.
func Reset() {
	uploadCountMetric.Reset()
	dispatchFailureCountMetric.Reset()
	buildCallbackCountMetric.Reset()
	publishDurationMetric.Reset()
	requestCountMetric.Reset()
	requestDurationMetric.Reset()
}
