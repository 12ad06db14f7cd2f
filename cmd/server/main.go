package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billsplit/internal/config"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/money"
	"github.com/mmynk/billsplit/internal/service"
	"github.com/mmynk/billsplit/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	currency, err := money.LookupCurrency(cfg.DefaultCurrency)
	if err != nil {
		slog.Error("Invalid default currency", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		interceptors = append(interceptors, middleware.NewMetrics(reg).Interceptor())
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		slog.Info("Metrics enabled", "path", "/metrics")
	}

	// Register Connect services
	splitPath, splitHandler := service.NewSplitServiceHandler(
		service.NewSplitService(currency),
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(splitPath, splitHandler)

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			slog.Error("Failed to resolve static path", "error", err)
			os.Exit(1)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := cfg.Addr()
	slog.Info("Connect server starting", "address", addr, "url", "http://localhost"+addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// staticHandler serves the frontend, falling back to index.html for unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/"+service.SplitServiceName) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}
