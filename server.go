package unitconv

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lone-faerie/unitconv/config"
	"github.com/lone-faerie/unitconv/log"
)

var conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "unitconv_conversions_total",
	Help: "Conversion requests by outcome.",
}, []string{"outcome"})

// response is the JSON body returned by both the HTTP endpoint and the
// MQTT bridge. Exactly one of the fields is set.
type response struct {
	Result *float64 `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Server is the HTTP front end of the conversion engine.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux
	srv *http.Server
}

// NewServer returns a new Server with the provided config. The server does
// not listen until [Server.ListenAndServe] is called.
func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.routes()

	return s
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("GET /convert", s.handleConvert)
	s.mux.HandleFunc("GET /units", s.handleUnits)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// GET /convert?value=<number>&from_unit=<unit>&to_unit=<unit>
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	value, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil {
		conversionsTotal.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, response{Error: "invalid value: " + strconv.Quote(q.Get("value"))})

		return
	}

	result, err := Convert(value, q.Get("from_unit"), q.Get("to_unit"))
	if err != nil {
		conversionsTotal.WithLabelValues("unsupported").Inc()
		// An unsupported pair is part of the endpoint's normal vocabulary,
		// not an HTTP failure.
		writeJSON(w, http.StatusOK, response{Error: err.Error()})

		return
	}

	conversionsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, response{Result: &result})
}

// GET /units
func (s *Server) handleUnits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Pairs())
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Unable to encode response", err)
	}
}

// ListenAndServe listens on the configured address and serves requests
// until ctx is canceled, then shuts down gracefully within the configured
// shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: s.cfg.HTTP.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)

	go func() {
		log.Info("HTTP server listening", "addr", s.cfg.HTTP.Addr)

		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info("HTTP server shutting down")

	return s.srv.Shutdown(shutdownCtx)
}
