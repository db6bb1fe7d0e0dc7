package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ruthgorge/expedition/internal/api/middleware"

// Metrics records HTTP server instruments.
type Metrics struct {
	duration  metric.Float64Histogram
	requests  metric.Int64Counter
	inFlight  metric.Int64UpDownCounter
	size      metric.Int64Histogram
	downloads metric.Int64Counter
}

// NewMetrics creates the instruments on meter, or on the global meter
// provider when meter is nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	var m Metrics
	var err, e error
	m.duration, e = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of HTTP server requests"), metric.WithUnit("s"))
	err = errors.Join(err, e)
	m.requests, e = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("HTTP server requests"), metric.WithUnit("{request}"))
	err = errors.Join(err, e)
	m.inFlight, e = meter.Int64UpDownCounter("http.server.requests_in_flight",
		metric.WithDescription("HTTP requests being served"), metric.WithUnit("{request}"))
	err = errors.Join(err, e)
	m.size, e = meter.Int64Histogram("http.server.response.size",
		metric.WithDescription("HTTP response body size"), metric.WithUnit("By"))
	err = errors.Join(err, e)
	m.downloads, e = meter.Int64Counter("expedition.downloads",
		metric.WithDescription("File downloads served, by media type"), metric.WithUnit("{file}"))
	err = errors.Join(err, e)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Middleware records one sample per request, labelled by route pattern so
// plan ids never become metric labels.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			method := attribute.String("http.method", r.Method)

			m.inFlight.Add(ctx, 1, metric.WithAttributes(method))
			defer m.inFlight.Add(ctx, -1, metric.WithAttributes(method))

			rec := newRecorder(w)
			next.ServeHTTP(rec, r)

			route := attribute.String("http.route", routePattern(r))
			attrs := metric.WithAttributes(
				method,
				route,
				attribute.String("http.status_code", strconv.Itoa(rec.statusCode)),
				attribute.Bool("error", rec.statusCode >= 400),
			)
			m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
			m.requests.Add(ctx, 1, attrs)
			m.size.Record(ctx, rec.written, attrs)

			if rec.statusCode == http.StatusOK && strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment") {
				mediaType, _, _ := strings.Cut(w.Header().Get("Content-Type"), ";")
				m.downloads.Add(ctx, 1, metric.WithAttributes(route, attribute.String("media_type", mediaType)))
			}
		})
	}
}
