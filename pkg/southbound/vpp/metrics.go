package vpp

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.fd.io/govpp/api"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

type requestMetrics struct {
	requests *prometheus.CounterVec
}

func newRequestMetrics() *requestMetrics {
	return &requestMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vpptest",
			Name:      "api_requests_total",
			Help:      "Binary API requests sent to VPP, by message and result.",
		}, []string{"message", "result"}),
	}
}

func (m *requestMetrics) register(r prometheus.Registerer) error {
	return r.Register(m.requests)
}

func (m *requestMetrics) observe(msg api.Message, err error) {
	result := resultOK
	if err != nil {
		result = resultError
	}
	m.requests.WithLabelValues(msg.GetMessageName(), result).Inc()
}

func (m *requestMetrics) value(message string, failed bool) float64 {
	result := resultOK
	if failed {
		result = resultError
	}

	var out dto.Metric
	if err := m.requests.WithLabelValues(message, result).Write(&out); err != nil {
		return 0
	}
	return out.GetCounter().GetValue()
}
