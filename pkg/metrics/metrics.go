package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics счётчики сервиса на собственном реестре, чтобы инстансы
// (в том числе тестовые) не конфликтовали при регистрации.
type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	latencyMS         *prometheus.HistogramVec
	OrdersCreated     prometheus.Counter
	CheckoutFailures  *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "domeda",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "domeda",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "domeda",
		Subsystem: service,
		Name:      "orders_created_total",
		Help:      "Orders successfully created at checkout.",
	})
	checkoutFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "domeda",
		Subsystem: service,
		Name:      "checkout_failures_total",
		Help:      "Checkout rejections by error code.",
	}, []string{"code"})
	statusTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "domeda",
		Subsystem: service,
		Name:      "order_status_transitions_total",
		Help:      "Applied order status transitions.",
	}, []string{"status"})

	registry.MustRegister(requests, latency, ordersCreated, checkoutFailures, statusTransitions)
	return &Metrics{
		registry:          registry,
		requests:          requests,
		latencyMS:         latency,
		OrdersCreated:     ordersCreated,
		CheckoutFailures:  checkoutFailures,
		StatusTransitions: statusTransitions,
	}
}

func (m *Metrics) ObserveRequest(handler string, status int, d time.Duration) {
	m.requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.latencyMS.WithLabelValues(handler).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
