package metrics

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "billing_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	noticeGenerateTotal   *prometheus.CounterVec
	noticeGenerateLatency *prometheus.HistogramVec
	noticeFailures        *prometheus.CounterVec
	noticeExportTotal     *prometheus.CounterVec
	noticeExportLatency   *prometheus.HistogramVec

	chargeStageTotal *prometheus.CounterVec
)

// Init registers billing metrics with the default registry.
func Init(logger *log.Logger) {
	registerOnce.Do(func() {
		noticeGenerateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notice_generate_total",
				Help: "Total payment notice generations by result",
			},
			[]string{"result"},
		)
		noticeGenerateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "notice_generate_latency_seconds",
				Help:    "Payment notice generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		noticeFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notice_failures_total",
				Help: "Total skipped accounts by failure reason",
			},
			[]string{"reason"},
		)
		noticeExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notice_export_total",
				Help: "Total notice export operations by format and result",
			},
			[]string{"format", "result"},
		)
		noticeExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "notice_export_latency_seconds",
				Help:    "Notice export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		chargeStageTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "charge_stage_total",
				Help: "Total priced charge lines by the stage that produced the amount",
			},
			[]string{"stage"},
		)

		prometheus.MustRegister(
			noticeGenerateTotal,
			noticeGenerateLatency,
			noticeFailures,
			noticeExportTotal,
			noticeExportLatency,
			chargeStageTotal,
		)
		if logger != nil {
			logger.Printf("metrics registered: prefix=%s", metricPrefix)
		}
	})
}

// ObserveNoticeGenerate records notice generation latency and result.
func ObserveNoticeGenerate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if noticeGenerateTotal != nil {
		noticeGenerateTotal.WithLabelValues(result).Inc()
	}
	if noticeGenerateLatency != nil {
		noticeGenerateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncNoticeFailure increments the skipped account counter.
func IncNoticeFailure(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if noticeFailures != nil {
		noticeFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveNoticeExport records export latency and result.
func ObserveNoticeExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if noticeExportTotal != nil {
		noticeExportTotal.WithLabelValues(format, result).Inc()
	}
	if noticeExportLatency != nil {
		noticeExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncChargeStage counts a line priced by stage.
func IncChargeStage(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	if chargeStageTotal != nil {
		chargeStageTotal.WithLabelValues(stage).Inc()
	}
}

// WriteTextfile dumps the default registry in the node exporter textfile format.
func WriteTextfile(path string) error {
	if path == "" {
		return errors.New("metrics: empty textfile path")
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
