package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sakura-notes/sakura/pkg/metrics"
)

type Metrics struct {
	apiResponseTime *prometheus.HistogramVec
	apiErrorCounter *prometheus.CounterVec
	llmRequestTime  *prometheus.HistogramVec
	llmErrorCounter *prometheus.CounterVec
	embeddingTime   *prometheus.HistogramVec
	clusterTime     *prometheus.HistogramVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime: metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter: metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		llmRequestTime:  metrics.NewHistogramVec("llm_request_time", []string{"target"}),
		llmErrorCounter: metrics.NewCounterVec("llm_error", []string{"type"}),
		embeddingTime:   metrics.NewHistogramVec("embedding_time", []string{"kind"}),
		clusterTime:     metrics.NewHistogramVec("cluster_time", nil),
	}

	return m
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) LLMRequestTimer(target string) *prometheus.Timer {
	return prometheus.NewTimer(m.llmRequestTime.WithLabelValues(target))
}

func (m *Metrics) LLMErrorInc(types string) {
	m.llmErrorCounter.WithLabelValues(types).Inc()
}

func (m *Metrics) EmbeddingTimer(kind string) *prometheus.Timer {
	return prometheus.NewTimer(m.embeddingTime.WithLabelValues(kind))
}

func (m *Metrics) ClusterTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.clusterTime.WithLabelValues())
}
