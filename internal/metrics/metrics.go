package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics usa um registry proprio para que testes possam criar instancias isoladas.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	proposalsDecided    *prometheus.CounterVec
	fundingCalculations prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisicoes HTTP por metodo, rota e status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duracao das requisicoes HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		proposalsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proposals_decided_total",
			Help: "Propostas aceitas ou recusadas.",
		}, []string{"status"}),
		fundingCalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "funding_progress_calculations_total",
			Help: "Calculos de progresso de financiamento executados.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.proposalsDecided,
		m.fundingCalculations,
	)
	return m
}

func (m *Metrics) ProposalDecided(status string) {
	m.proposalsDecided.WithLabelValues(status).Inc()
}

func (m *Metrics) FundingCalculated() {
	m.fundingCalculations.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware registra contagem e duracao usando o template da rota, nao a URL.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
