// Package metrics holds the Prometheus collectors of the tenant service. A
// nil *Collector is valid and records nothing, so services can be built in
// tests without a registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "tally"

// Bootstrap outcomes.
const (
	BootstrapCreated  = "created"
	BootstrapExisting = "existing"
	BootstrapFailed   = "failed"
)

// Collector owns its own registry rather than the global default one.
type Collector struct {
	registry *prometheus.Registry

	Decisions           *prometheus.CounterVec
	Bootstraps          *prometheus.CounterVec
	AuditRecords        *prometheus.CounterVec
	AuditVerifications  *prometheus.CounterVec
	AuditChainBreaks    prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,

		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "authz_decisions_total",
			Help:      "Authorization decisions by capability and outcome",
		}, []string{"capability", "outcome", "reason"}),

		Bootstraps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "bootstraps_total",
			Help:      "Bootstrap calls by outcome",
		}, []string{"outcome"}),

		AuditRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "audit_records_total",
			Help:      "Audit records appended by table and action",
		}, []string{"table", "action"}),

		AuditVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "audit_verifications_total",
			Help:      "Audit chain verifications by result",
		}, []string{"result"}),

		AuditChainBreaks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "audit_chain_breaks_total",
			Help:      "Audit chains found broken by verification",
		}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.Decisions,
		c.Bootstraps,
		c.AuditRecords,
		c.AuditVerifications,
		c.AuditChainBreaks,
		c.HTTPRequestsTotal,
		c.HTTPRequestDuration,
	)
	return c
}

// Registry exposes the registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) ObserveDecision(capability string, allowed bool, reason string) {
	if c == nil {
		return
	}
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	c.Decisions.WithLabelValues(capability, outcome, reason).Inc()
}

func (c *Collector) ObserveBootstrap(outcome string) {
	if c == nil {
		return
	}
	c.Bootstraps.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveAuditRecord(table, action string) {
	if c == nil {
		return
	}
	c.AuditRecords.WithLabelValues(table, action).Inc()
}

func (c *Collector) ObserveVerification(ok bool) {
	if c == nil {
		return
	}
	if ok {
		c.AuditVerifications.WithLabelValues("ok").Inc()
		return
	}
	c.AuditVerifications.WithLabelValues("broken").Inc()
	c.AuditChainBreaks.Inc()
}

// Middleware records request counts and latency. route names the handler
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) Middleware(route string, next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		c.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		c.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
