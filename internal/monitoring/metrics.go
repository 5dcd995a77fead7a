package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Insight engine metrics
	InsightsComputed prometheus.Counter
	InsightScores    prometheus.Histogram

	// Matching metrics
	MatchQueriesTotal    prometheus.Counter
	MatchResultsReturned prometheus.Histogram

	// Application metrics
	ApplicationsTotal    *prometheus.CounterVec
	InvitationsTotal     prometheus.Counter
	PromotionTransitions *prometheus.CounterVec

	// Business metrics
	PromotionsCreated prometheus.Counter
	ProfilesUpserted  prometheus.Counter
}

var metrics *Metrics

// Init initializes all Prometheus metrics
func Init() *Metrics {
	if metrics != nil {
		return metrics
	}

	metrics = &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Insight engine metrics
		InsightsComputed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "insights_computed_total",
				Help: "Total number of insight snapshot recomputations",
			},
		),
		InsightScores: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "insight_score",
				Help:    "Distribution of computed profile scores",
				Buckets: []float64{50, 60, 70, 80, 90, 100},
			},
		),

		// Matching metrics
		MatchQueriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "match_queries_total",
				Help: "Total number of campaign matching feed queries",
			},
		),
		MatchResultsReturned: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "match_results_returned",
				Help:    "Number of promotion requests returned per matching query",
				Buckets: []float64{0, 1, 5, 10, 20, 50},
			},
		),

		// Application metrics
		ApplicationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "applications_total",
				Help: "Total number of application attempts by outcome",
			},
			[]string{"outcome"},
		),
		InvitationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "invitations_total",
				Help: "Total number of seller-side invitations",
			},
		),
		PromotionTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promotion_status_transitions_total",
				Help: "Total number of promotion request status transitions",
			},
			[]string{"from", "to"},
		),

		// Business metrics
		PromotionsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promotions_created_total",
				Help: "Total number of promotion requests created",
			},
		),
		ProfilesUpserted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "profiles_upserted_total",
				Help: "Total number of creator profile writes",
			},
		),
	}

	return metrics
}

// Get returns the initialized metrics, initializing them if needed
func Get() *Metrics {
	return Init()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware() gin.HandlerFunc {
	m := Init()
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()

		c.Next()

		m.HTTPRequestsInFlight.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
