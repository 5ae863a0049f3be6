// Package httpclient builds the HTTP clients used to call upstream services
// and translates their failures into errs.GatewayTimeoutError and
// errs.BadGatewayError.
package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"deliverytracking/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// LoggingRoundTripper logs every request and, when Metrics is set, observes
// its duration.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied  http.RoundTripper
	Upstream string
	Metrics  *Metrics
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.Get().With(
		zap.String("upstream", lrt.Upstream),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	log.Debug("HTTP request started")

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Warn("HTTP request failed", zap.Duration("duration", duration), zap.Error(err))
		lrt.Metrics.observe(lrt.Upstream, "error", duration)
		return nil, err
	}

	log.Debug("HTTP request completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	lrt.Metrics.observe(lrt.Upstream, strconv.Itoa(resp.StatusCode), duration)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware. timeout bounds
// the whole exchange including reading the body.
func NewClient(upstream string, timeout time.Duration, metrics *Metrics) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied:  http.DefaultTransport,
			Upstream: upstream,
			Metrics:  metrics,
		},
		Timeout: timeout,
	}
}

// Metrics records upstream call latency.
type Metrics struct {
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "delivery_tracking_upstream_request_duration_seconds",
			Help:    "Duration of calls to upstream services by status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream", "code"}),
	}
}

func (m *Metrics) observe(upstream, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(upstream, code).Observe(d.Seconds())
}
