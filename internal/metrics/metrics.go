// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking results used as the "result" label.
const (
	ResultBooked        = "booked"
	ResultNoSeats       = "no_seats"
	ResultDuplicate     = "duplicate"
	ResultFlightMissing = "flight_not_found"
	ResultError         = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "space_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "space_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	Bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "space_bookings_total",
			Help: "Seat reservation attempts by result",
		},
		[]string{"result"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "space_event_publish_failures_total",
			Help: "Booking events that could not be published",
		},
		[]string{"topic"},
	)

	FlightsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "space_flights_cache_lookups_total",
			Help: "Flights list cache lookups by outcome (hit, miss, error)",
		},
		[]string{"outcome"},
	)
)
