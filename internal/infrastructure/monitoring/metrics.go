package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	LoginAttemptsTotal    *prometheus.CounterVec
	Customers             *prometheus.GaugeVec
	EventsPublishedTotal  *prometheus.CounterVec
}

var Business = BusinessMetrics{
	CustomersCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "customer_api_customers_created_total",
			Help: "Total number of customers successfully created.",
		},
	),
	LoginAttemptsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_api_login_attempts_total",
			Help: "Total number of customer identification attempts by outcome.",
		},
		[]string{"outcome"},
	),
	Customers: promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "customer_api_customers",
			Help: "Number of registered customers by status, refreshed by the census job.",
		},
		[]string{"status"},
	),
	EventsPublishedTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_api_events_published_total",
			Help: "Total number of customer events handed to the broker by routing key and outcome.",
		},
		[]string{"routing_key", "outcome"},
	),
}
