package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for the quote-request pipeline.
type PipelineMetrics struct {
	submissionsTotal *prometheus.CounterVec
	enrichmentTotal  *prometheus.CounterVec
	emailTotal       *prometheus.CounterVec
	pipelineLatency  prometheus.Histogram
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webigo",
			Subsystem: "devis",
			Name:      "submissions_total",
			Help:      "Quote requests by outcome",
		}, []string{"outcome"}),
		enrichmentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webigo",
			Subsystem: "devis",
			Name:      "enrichment_total",
			Help:      "AI enrichment steps by outcome",
		}, []string{"step", "outcome"}),
		emailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webigo",
			Subsystem: "devis",
			Name:      "email_total",
			Help:      "Notification emails by recipient and outcome",
		}, []string{"recipient", "outcome"}),
		pipelineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "webigo",
			Subsystem: "devis",
			Name:      "pipeline_latency_seconds",
			Help:      "End-to-end latency of quote-request processing",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.enrichmentTotal, m.emailTotal, m.pipelineLatency)
	return m
}

func (m *PipelineMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) ObserveEnrichment(step, outcome string) {
	if m == nil {
		return
	}
	m.enrichmentTotal.WithLabelValues(step, outcome).Inc()
}

func (m *PipelineMetrics) ObserveEmail(recipient, outcome string) {
	if m == nil {
		return
	}
	m.emailTotal.WithLabelValues(recipient, outcome).Inc()
}

func (m *PipelineMetrics) ObserveLatency(seconds float64) {
	if m == nil {
		return
	}
	m.pipelineLatency.Observe(seconds)
}
