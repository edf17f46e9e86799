// Package metrics 简历分析服务的 Prometheus 指标。所有记录方法对 nil 接收者安全
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_analyzer"

// 分析结果状态
const (
	OutcomeAnalyzed = "analyzed"
	OutcomeNoResult = "no_result"
	OutcomeFailed   = "failed"
)

// AnalyzerMetrics HTTP 与分析流程指标
type AnalyzerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal      *prometheus.CounterVec
	predictedField     *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
	sideEffectFailures *prometheus.CounterVec
}

// NewAnalyzerMetrics 在独立的 registry 上注册全部指标
func NewAnalyzerMetrics(service string) *AnalyzerMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	m := &AnalyzerMetrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),
		requestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: constLabels,
		}),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "total",
			Help:        "Resume analyses by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		predictedField: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "predicted_field_total",
			Help:        "Predicted career field of analysed resumes, empty label for no match.",
			ConstLabels: constLabels,
		}, []string{"field"}),
		extractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "extraction_duration_seconds",
			Help:        "Time spent extracting fields from the uploaded PDF.",
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			ConstLabels: constLabels,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "lookups_total",
			Help:        "Extraction cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		sideEffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "side_effect_failures_total",
			Help:        "Failures of optional archive/cache/event steps.",
			ConstLabels: constLabels,
		}, []string{"component"}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.analysesTotal,
		m.predictedField,
		m.extractionDuration,
		m.cacheLookups,
		m.sideEffectFailures,
	)
	return m
}

// Registry 供测试读取
func (m *AnalyzerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 暴露 /metrics
func (m *AnalyzerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware 记录 Hertz 请求数、耗时与并发量。path 使用路由模板，避免高基数
func (m *AnalyzerMetrics) Middleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		ctx.Next(c)

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := string(ctx.Method())
		m.requestTotal.WithLabelValues(method, path, strconv.Itoa(ctx.Response.StatusCode())).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordAnalysis 记录一次分析的结果
func (m *AnalyzerMetrics) RecordAnalysis(outcome, field string) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeAnalyzed {
		m.predictedField.WithLabelValues(field).Inc()
	}
}

// ObserveExtraction 记录抽取耗时
func (m *AnalyzerMetrics) ObserveExtraction(d time.Duration) {
	if m == nil {
		return
	}
	m.extractionDuration.Observe(d.Seconds())
}

// RecordCacheLookup 记录缓存命中情况
func (m *AnalyzerMetrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordSideEffectFailure 记录可选步骤失败，component 取 archive/cache/event
func (m *AnalyzerMetrics) RecordSideEffectFailure(component string) {
	if m == nil {
		return
	}
	m.sideEffectFailures.WithLabelValues(component).Inc()
}
