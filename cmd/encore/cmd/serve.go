package cmd

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/govcongiants/encore/pkg/logging"
)

var (
	serveAddr string
	serveDir  string
)

// serveCmd hosts the report directory: the static HTML pages plus the
// generated report-data.js.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report directory locally",
	Long: `Serve hosts the report directory (the HTML report pages and the
generated report-data.js) over HTTP, with a health endpoint at /healthz and
Prometheus metrics at /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", ".", "report directory to serve")

	rootCmd.AddCommand(serveCmd)
}

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "encore",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests served by status code",
	}, []string{"code"})

	requestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "encore",
		Name:      "http_request_duration_seconds",
		Help:      "Time spent serving HTTP requests",
		Buckets:   prometheus.DefBuckets,
	})
)

func runServe(cmd *cobra.Command, _ []string) error {
	prometheus.MustRegister(requestsTotal, requestDuration)

	mux := http.NewServeMux()
	mux.Handle("/", instrument(http.FileServer(http.Dir(serveDir))))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              serveAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", serveAddr).Str("dir", serveDir).Msg("Serving report")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logging.Info().Msg("Shutting down")
	return server.Shutdown(shutdownCtx)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with request logging and Prometheus metrics.
// A client-supplied X-Request-Id is carried through to the request log.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		ctx := req.Context()
		if id := req.Header.Get("X-Request-Id"); id != "" {
			ctx = logging.WithRequestID(ctx, id)
		}

		next.ServeHTTP(rec, req.WithContext(ctx))

		elapsed := time.Since(start)
		requestsTotal.WithLabelValues(strconv.Itoa(rec.status)).Inc()
		requestDuration.Observe(elapsed.Seconds())
		logging.Ctx(ctx).Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("Request")
	})
}
