package metrics

import "github.com/prometheus/client_golang/prometheus"

// HoneypotMetrics exposes counters/histograms for engagement flows.
type HoneypotMetrics struct {
	messagesTotal   *prometheus.CounterVec
	detectionsTotal *prometheus.CounterVec
	artifactsTotal  *prometheus.CounterVec
	reportsTotal    *prometheus.CounterVec
	replyLatency    *prometheus.HistogramVec
}

func NewHoneypotMetrics(reg prometheus.Registerer) *HoneypotMetrics {
	m := &HoneypotMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scamshield",
			Subsystem: "honeypot",
			Name:      "messages_total",
			Help:      "Total scammer messages processed",
		}, []string{"persona"}),
		detectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scamshield",
			Subsystem: "honeypot",
			Name:      "detections_total",
			Help:      "Total messages analyzed, by threat level",
		}, []string{"threat_level", "scam_detected"}),
		artifactsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scamshield",
			Subsystem: "honeypot",
			Name:      "artifacts_total",
			Help:      "Total intelligence artifacts extracted, by kind",
		}, []string{"kind"}),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scamshield",
			Subsystem: "honeypot",
			Name:      "reports_total",
			Help:      "Total final reports dispatched",
		}, []string{"status"}),
		replyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scamshield",
			Subsystem: "honeypot",
			Name:      "reply_latency_seconds",
			Help:      "Latency of decoy reply generation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"generated"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.detectionsTotal, m.artifactsTotal, m.reportsTotal, m.replyLatency)
	return m
}

func (m *HoneypotMetrics) ObserveMessage(persona string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(persona).Inc()
}

func (m *HoneypotMetrics) ObserveDetection(threatLevel string, scamDetected bool) {
	if m == nil {
		return
	}
	label := "false"
	if scamDetected {
		label = "true"
	}
	m.detectionsTotal.WithLabelValues(threatLevel, label).Inc()
}

func (m *HoneypotMetrics) ObserveArtifacts(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.artifactsTotal.WithLabelValues(kind).Add(float64(n))
}

func (m *HoneypotMetrics) ObserveReport(status string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(status).Inc()
}

func (m *HoneypotMetrics) ObserveReplyLatency(generated bool, seconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if generated {
		label = "true"
	}
	m.replyLatency.WithLabelValues(label).Observe(seconds)
}
