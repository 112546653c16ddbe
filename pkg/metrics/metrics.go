package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

var (
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	ordersTotal         *prometheus.CounterVec
	orderValueTotal     prometheus.Counter
	authEventsTotal     *prometheus.CounterVec
	registerOnce        sync.Once
)

// Register initializes the collectors on the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the storefront API.",
		}, []string{"method", "route", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})

		ordersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Orders submitted, by outcome.",
		}, []string{"result"})

		orderValueTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_value_total",
			Help:      "Sum of accepted order totals in whole currency units.",
		})

		authEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Registration and login attempts, by event and outcome.",
		}, []string{"event", "result"})
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(method, route string, status int, seconds float64) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// IncOrder records an order outcome; value is only added for "sent".
func IncOrder(result string, value int64) {
	if ordersTotal == nil {
		return
	}
	ordersTotal.WithLabelValues(result).Inc()
	if result == "sent" && value > 0 {
		orderValueTotal.Add(float64(value))
	}
}

func IncAuth(event, result string) {
	if authEventsTotal == nil {
		return
	}
	authEventsTotal.WithLabelValues(event, result).Inc()
}
