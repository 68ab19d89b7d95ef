// Additive loopback observability surface (SPEC_FULL.md §6): a `/healthz`
// endpoint backed by the teacher's health-check manager
// (pkg/monitoring/health_check.go) and a Prometheus `/metrics` endpoint
// fed by the OpenTelemetry Prometheus exporter, a direct teacher
// dependency (go.opentelemetry.io/otel/exporters/prometheus). Neither
// endpoint changes the command envelope; both are plain HTTP, unlike the
// NDJSON command transport.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/continuum-run/continuum/pkg/monitoring"
	"github.com/continuum-run/continuum/pkg/runtime"
)

// newMeterProvider wires the OTel Prometheus exporter into a meter
// provider whose collected series are exposed on /metrics.
func newMeterProvider() (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}

// newHealthManager registers one health check per module, each reporting
// healthy based on whether the module has recorded any dispatch errors in
// its most recent window. A module with zero calls is reported healthy
// (nothing has failed yet).
func newHealthManager(reg *runtime.Registry) *monitoring.HealthCheckManager {
	mgr := monitoring.NewHealthCheckManager()
	check := monitoring.NewHealthCheck("dispatcher", "continuumd", 30*time.Second, func() *monitoring.HealthCheckResult {
		for _, info := range reg.ListModules() {
			snap := info.Metrics
			if snap.Calls > 0 && snap.Errors == snap.Calls {
				return &monitoring.HealthCheckResult{
					Status:    monitoring.StatusUnhealthy,
					Message:   "module " + info.Descriptor.Name + " has failed every dispatched command",
					Timestamp: time.Now(),
				}
			}
		}
		return &monitoring.HealthCheckResult{Status: monitoring.StatusHealthy, Timestamp: time.Now()}
	})
	_ = mgr.AddCheck(check)
	return mgr
}

// observabilityMux builds the loopback-only HTTP handler serving /healthz
// and /metrics.
func observabilityMux(reg *runtime.Registry, healthMgr *monitoring.HealthCheckManager) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status, results := healthMgr.CheckSystemHealth()
		w.Header().Set("Content-Type", "application/json")
		if status != monitoring.StatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": status,
			"checks": results,
		})
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/runtime/modules", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reg.ListModules())
	})

	return mux
}

func startObservabilityServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		_ = srv.ListenAndServe()
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv
}
