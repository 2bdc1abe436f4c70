package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for client calls
const (
	OutcomeSuccess          = "success"
	OutcomePassthrough      = "passthrough"
	OutcomeApplicationError = "application_error"
	OutcomeAuthFailure      = "auth_failure"
	OutcomeTransportError   = "transport_error"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeCancelled        = "cancelled"
)

// Metrics holds the client-side WMS metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// Outgoing call metrics
	ClientRequestsTotal    *prometheus.CounterVec
	ClientRequestDuration  *prometheus.HistogramVec
	ClientRequestsInFlight prometheus.Gauge

	// Session and notification metrics
	ForcedLogouts      prometheus.Counter
	NotificationsTotal *prometheus.CounterVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec

	// Dashboard gauges exported by the watch command
	DashboardStat   *prometheus.GaugeVec
	LastPollSuccess prometheus.Gauge
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
	// SkipRuntime leaves out the Go and process collectors
	SkipRuntime bool
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "wms",
	}
}

// New creates a new Metrics instance on its own registry
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()
	if !config.SkipRuntime {
		registry.MustRegister(prometheus.NewGoCollector())
		registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	}

	constLabels := prometheus.Labels{"service": config.ServiceName}
	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.ClientRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "client_requests_total",
			Help:        "Total number of calls made to the WMS API",
			ConstLabels: constLabels,
		},
		[]string{"method", "operation", "status", "outcome"},
	)

	m.ClientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "client_request_duration_seconds",
			Help:        "WMS API call duration in seconds",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		},
		[]string{"method", "operation"},
	)

	m.ClientRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "client_requests_in_flight",
			Help:        "Number of WMS API calls currently awaiting a response",
			ConstLabels: constLabels,
		},
	)

	m.ForcedLogouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "client_forced_logouts_total",
			Help:        "Total number of sessions ended by an authentication failure",
			ConstLabels: constLabels,
		},
	)

	m.NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "client_notifications_total",
			Help:        "Total number of user-facing notifications emitted",
			ConstLabels: constLabels,
		},
		[]string{"level"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "circuit_breaker_state",
			Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: constLabels,
		},
		[]string{"name"},
	)

	m.CircuitBreakerTrips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "circuit_breaker_trips_total",
			Help:        "Total number of circuit breaker trips",
			ConstLabels: constLabels,
		},
		[]string{"name"},
	)

	m.DashboardStat = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "dashboard_stat",
			Help:        "Latest dashboard statistic reported by the WMS API",
			ConstLabels: constLabels,
		},
		[]string{"stat"},
	)

	m.LastPollSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "dashboard_last_poll_success",
			Help:        "1 if the latest dashboard poll succeeded, 0 otherwise",
			ConstLabels: constLabels,
		},
	)

	registry.MustRegister(
		m.ClientRequestsTotal,
		m.ClientRequestDuration,
		m.ClientRequestsInFlight,
		m.ForcedLogouts,
		m.NotificationsTotal,
		m.CircuitBreakerState,
		m.CircuitBreakerTrips,
		m.DashboardStat,
		m.LastPollSuccess,
	)

	return m
}

// Handler returns the HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordClientRequest records a finished WMS API call
func (m *Metrics) RecordClientRequest(method, operation string, status int, outcome string, duration time.Duration) {
	m.ClientRequestsTotal.WithLabelValues(method, operation, strconv.Itoa(status), outcome).Inc()
	m.ClientRequestDuration.WithLabelValues(method, operation).Observe(duration.Seconds())
}

// IncrementInFlight marks a call as started
func (m *Metrics) IncrementInFlight() {
	m.ClientRequestsInFlight.Inc()
}

// DecrementInFlight marks a call as finished
func (m *Metrics) DecrementInFlight() {
	m.ClientRequestsInFlight.Dec()
}

// RecordForcedLogout records a session ended by an authentication failure
func (m *Metrics) RecordForcedLogout() {
	m.ForcedLogouts.Inc()
}

// RecordNotification records a user-facing notification
func (m *Metrics) RecordNotification(level string) {
	m.NotificationsTotal.WithLabelValues(level).Inc()
}

// SetCircuitBreakerState sets the circuit breaker state gauge
func (m *Metrics) SetCircuitBreakerState(name string, state float64) {
	m.CircuitBreakerState.WithLabelValues(name).Set(state)
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	m.CircuitBreakerTrips.WithLabelValues(name).Inc()
}

// SetDashboardStat exports one dashboard statistic
func (m *Metrics) SetDashboardStat(stat string, value float64) {
	m.DashboardStat.WithLabelValues(stat).Set(value)
}

// SetPollResult records whether the latest dashboard poll succeeded
func (m *Metrics) SetPollResult(ok bool) {
	if ok {
		m.LastPollSuccess.Set(1)
		return
	}
	m.LastPollSuccess.Set(0)
}
