package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Metrics
// =============================================================================

// HttpRequestsTotal counts all HTTP requests.
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration is a latency histogram per method/path.
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight tracks requests currently being processed.
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Store Metrics
// =============================================================================

// StoreDegraded is 1 while the service is running on the in-memory fallback
// store instead of MongoDB, 0 otherwise.
var StoreDegraded = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "feedback_store_degraded",
		Help: "Whether the feedback store is running on the in-memory fallback (1) or MongoDB (0)",
	},
)

// StoreFailovers counts transitions from the primary store to the fallback.
var StoreFailovers = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "feedback_store_failovers_total",
		Help: "Total number of failovers from MongoDB to the in-memory store",
	},
)

// StoreErrors counts storage-level errors per operation.
var StoreErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "feedback_store_errors_total",
		Help: "Total number of storage errors",
	},
	[]string{"operation"}, // insert, list, update, delete, ping
)

// =============================================================================
// Business Metrics
// =============================================================================

// FeedbackCreated counts successfully submitted feedback records.
var FeedbackCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "feedback_created_total",
		Help: "Total number of feedback records created",
	},
)

// FeedbackRating tracks the distribution of submitted ratings.
var FeedbackRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "feedback_rating",
		Help:    "Distribution of feedback ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// AuthLogins counts admin login attempts.
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"}, // success, failed
)

// =============================================================================
// Kafka Metrics
// =============================================================================

// KafkaMessagesProduced counts produced event messages.
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration measures produce latency.
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors counts Kafka produce errors.
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Cache Metrics
// =============================================================================

// CacheHits counts Redis cache hits.
var CacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// CacheMisses counts Redis cache misses.
var CacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors counts Redis operation errors.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)
