// Package metrics exposes Prometheus collectors for the RPC surface and the
// allocation engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RPCRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weekgoal_rpc_requests_total",
			Help: "Total number of RPC calls",
		},
		[]string{"procedure", "code"},
	)

	RPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weekgoal_rpc_duration_seconds",
			Help:    "Duration of RPC calls",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"procedure"},
	)

	Allocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weekgoal_allocations_total",
			Help: "Target recomputations by mode (full or tail)",
		},
		[]string{"mode"},
	)

	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weekgoal_session_events_total",
			Help: "Events emitted by week sessions, by kind",
		},
		[]string{"kind"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "weekgoal_active_sessions",
			Help: "Week sessions currently held in memory",
		},
	)
)

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{RPCRequests, RPCDuration, Allocations, SessionEvents, ActiveSessions} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Interceptor returns a Connect interceptor recording call counts and latency.
func Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = "unknown"
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				}
			}
			RPCRequests.WithLabelValues(procedure, code).Inc()
			RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}
