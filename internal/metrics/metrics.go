// Package metrics defines prometheus collectors of the authenticated transport.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "postboard"

// Refresh outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Transport groups collectors of the refreshing round tripper
type Transport struct {
	Requests  *prometheus.CounterVec
	Expired   prometheus.Counter
	Refreshes *prometheus.CounterVec
	Replays   *prometheus.CounterVec
}

// NewTransport creates unregistered collectors
func NewTransport() *Transport {
	return &Transport{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "requests_total",
			Help:      "Authenticated requests by response status class",
		}, []string{"class"}),
		Expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "expired_total",
			Help:      "Responses signaling an expired access token",
		}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "refresh_total",
			Help:      "Access token refresh calls by outcome",
		}, []string{"outcome"}),
		Replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "replay_total",
			Help:      "Replayed requests by response status class",
		}, []string{"class"}),
	}
}

// Register registers collectors on the given registry (or default if nil).
func (t *Transport) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, collector := range []prometheus.Collector{t.Requests, t.Expired, t.Refreshes, t.Replays} {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}

// StatusClass maps status code to 2xx, 3xx, 4xx or 5xx
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	}
	return "other"
}
