package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/alejandrodnm/quadra/internal/calculator"
)

const shutdownTimeout = 5 * time.Second

// Config controla el servidor HTTP.
type Config struct {
	Addr           string
	RateLimitRPS   float64
	RateLimitBurst int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultConfig escucha solo en localhost.
func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:8080",
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
	}
}

// Server expone el Service como API JSON.
type Server struct {
	cfg      Config
	svc      *calculator.Service
	router   *mux.Router
	limiter  *rate.Limiter
	metrics  *metrics
	registry *prometheus.Registry
}

// NewServer crea el servidor con su propio registro de métricas.
func NewServer(cfg Config, svc *calculator.Service) *Server {
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = DefaultConfig().RateLimitRPS
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = DefaultConfig().RateLimitBurst
	}

	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		svc:      svc,
		router:   mux.NewRouter(),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		metrics:  newMetrics(reg),
		registry: reg,
	}
	s.setupRoutes()
	return s
}

// Handler devuelve el router con todos los middlewares.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metricsMiddleware)

	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/v1/strategies", s.handleStrategies).Methods(http.MethodGet)
	api.HandleFunc("/v1/splits", s.handleSplits).Methods(http.MethodPost)
	api.HandleFunc("/v1/custom", s.handleCustom).Methods(http.MethodPost)
	api.HandleFunc("/v1/goal", s.handleGoal).Methods(http.MethodPost)

	// mux no aplica Use() a las rutas sin match: el 404 se envuelve a mano
	// para que tenga request id, log y la etiqueta "unmatched" en métricas.
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", RequestID: requestID(r.Context())})
	})
	s.router.NotFoundHandler = s.requestIDMiddleware(s.loggingMiddleware(s.metricsMiddleware(notFound)))
}

// Run sirve hasta que el contexto se cancele y luego hace un shutdown ordenado.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http api listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpapi.Run: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpapi.Run: shutdown: %w", err)
	}
	slog.Info("http api stopped")
	return nil
}
