package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OpReceive = "receive"
	OpSend    = "send"
	OpDecode  = "decode"
)

var (
	registerOnce sync.Once

	messagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llrpc",
			Subsystem: "endpoint",
			Name:      "messages_sent_total",
			Help:      "Messages originated by this endpoint.",
		},
		[]string{"type"},
	)
	messagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llrpc",
			Subsystem: "endpoint",
			Name:      "messages_received_total",
			Help:      "Messages decoded from inbound datagrams.",
		},
		[]string{"type"},
	)
	transportErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llrpc",
			Subsystem: "endpoint",
			Name:      "transport_errors_total",
			Help:      "Per-operation transport and decode failures.",
		},
		[]string{"op"},
	)
	heartbeatsCoalesced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "llrpc",
			Subsystem: "endpoint",
			Name:      "heartbeats_coalesced_total",
			Help:      "Heartbeat ticks that landed while one was already pending.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(messagesSent, messagesReceived, transportErrors, heartbeatsCoalesced)
	})
}

func RecordSent(msgType string) {
	RegisterMetrics()
	messagesSent.WithLabelValues(msgType).Inc()
}

func RecordReceived(msgType string) {
	RegisterMetrics()
	messagesReceived.WithLabelValues(msgType).Inc()
}

func RecordTransportError(op string) {
	RegisterMetrics()
	transportErrors.WithLabelValues(op).Inc()
}

func RecordHeartbeatCoalesced() {
	RegisterMetrics()
	heartbeatsCoalesced.Inc()
}
