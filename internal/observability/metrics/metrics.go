// Package metrics provides Prometheus observability for the sign-in and
// access-control paths.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all registered collectors. A nil *Metrics is valid and
// records nothing, so wiring is optional in tests.
type Metrics struct {
	// Sign-in attempts by provider and outcome
	SignIns *prometheus.CounterVec

	// Per-request session resolutions by result
	SessionResolutions *prometheus.CounterVec

	// Route guard decisions by kind
	GuardDecisions *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a Metrics instance on the given registerer. Tests use
// a fresh registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticenest_sign_ins_total",
			Help: "Total sign-in attempts by provider and outcome",
		}, []string{"provider", "outcome"}), // outcome: "success", "failure"

		SessionResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticenest_session_resolutions_total",
			Help: "Per-request session resolutions by result",
		}, []string{"result"}), // result: "authenticated", "anonymous", "error"

		GuardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticenest_guard_decisions_total",
			Help: "Route guard decisions by kind",
		}, []string{"decision"}), // decision: "allow", "redirect"
	}
}

// IncrementSignIn records a sign-in attempt.
func (m *Metrics) IncrementSignIn(provider, outcome string) {
	if m != nil {
		m.SignIns.WithLabelValues(provider, outcome).Inc()
	}
}

// IncrementSessionResolution records a session resolution result.
func (m *Metrics) IncrementSessionResolution(result string) {
	if m != nil {
		m.SessionResolutions.WithLabelValues(result).Inc()
	}
}

// IncrementGuardDecision records a route guard decision.
func (m *Metrics) IncrementGuardDecision(decision string) {
	if m != nil {
		m.GuardDecisions.WithLabelValues(decision).Inc()
	}
}
