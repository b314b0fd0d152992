package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "customers"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of processed http requests.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of http requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	gateRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Number of customer writes rejected by validation.",
	}, []string{"reason"})
)

// RejectionRecorder counts rejected writes
type RejectionRecorder interface {
	Rejected(reason string)
}

type prometheusRecorder struct{}

// Recorder returns prometheus backed RejectionRecorder
func Recorder() RejectionRecorder {
	return prometheusRecorder{}
}

func (prometheusRecorder) Rejected(reason string) {
	gateRejections.WithLabelValues(reason).Inc()
}

// Middleware observes every http request.
// Error handler must skip already committed responses.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// commit error response to observe its status
				c.Error(err)
			}

			status := c.Response().Status

			route := c.Path()
			httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes registered metrics
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
