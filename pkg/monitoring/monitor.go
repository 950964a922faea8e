package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuestionAttemptsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_attempts_recorded_total",
			Help: "Question attempts committed to the durable store",
		},
		[]string{"question_type"},
	)

	DuplicateAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "question_attempts_duplicate_total",
			Help: "Submissions resolved idempotently against an existing question attempt",
		},
	)

	QuizAttemptsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_completed_total",
			Help: "Quiz attempts whose final question was recorded",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(QuestionAttemptsRecorded)
	prometheus.MustRegister(DuplicateAttempts)
	prometheus.MustRegister(QuizAttemptsCompleted)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
