package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// store
	StoreOpDuration *prometheus.HistogramVec

	// ride lifecycle
	RideEvents  *prometheus.CounterVec
	RidesOpen   prometheus.Gauge
	ExportsTotal prometheus.Counter
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campusride",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "campusride",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				// Sane initial defaults
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "campusride",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		StoreOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "campusride",
				Subsystem: "store",
				Name:      "op_duration_seconds",
				Help:      "In-memory store operation latency (logical op).",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"op", "status"},
		),
		RideEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campusride",
				Subsystem: "rides",
				Name:      "events_total",
				Help:      "Ride lifecycle transitions by outcome.",
			},
			[]string{"event"}, // event=requested|confirmed|completed|cancelled
		),
		RidesOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "campusride",
				Subsystem: "rides",
				Name:      "pending",
				Help:      "Current number of PENDING ride requests.",
			},
		),
		ExportsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "campusride",
				Name:      "csv_exports_total",
				Help:      "CSV export downloads served.",
			},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.StoreOpDuration, p.RideEvents, p.RidesOpen, p.ExportsTotal)

	return p
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
