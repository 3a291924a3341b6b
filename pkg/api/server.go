package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"payment-kiosk/pkg/kiosk"
	"payment-kiosk/pkg/payment"
)

// Server exposes the kiosk controller to a remote presentation layer.
type Server struct {
	controller *kiosk.Controller
	router     *mux.Router
	server     *http.Server
	config     ServerConfig
	logger     *zap.Logger
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration

	// Gatherer serves /metrics when set
	Gatherer prometheus.Gatherer

	Logger *zap.Logger
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// intentRequest is the optional body of POST /intents/{intent}.
type intentRequest struct {
	Digit  string `json:"digit"`
	Method string `json:"method"`
}

// NewServer creates a new API server for the given controller.
func NewServer(c *kiosk.Controller, config ServerConfig) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		controller: c,
		router:     mux.NewRouter(),
		config:     config,
		logger:     logger,
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/view", s.handleView).Methods(http.MethodGet)
	s.router.HandleFunc("/intents/{intent}", s.handleIntent).Methods(http.MethodPost)
	s.router.HandleFunc("/transactions", s.handleTransactions).Methods(http.MethodGet)
	if config.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until Shutdown is called. It returns nil after a
// clean shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("api listening", zap.String("address", s.config.Address))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.View())
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": s.controller.Ledger().All(),
	})
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := kiosk.Intent{
		Kind:   kiosk.IntentKind(mux.Vars(r)["intent"]),
		Key:    req.Digit,
		Method: req.Method,
	}

	if err := s.controller.Dispatch(in); err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("intent failed", zap.String("intent", string(in.Kind)), zap.Error(err))
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.controller.View())
}

// statusFor maps controller errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, kiosk.ErrUnknownIntent),
		errors.Is(err, kiosk.ErrInvalidKey),
		errors.Is(err, payment.ErrInvalidMethod):
		return http.StatusBadRequest
	case errors.Is(err, kiosk.ErrIntentNotAllowed),
		errors.Is(err, payment.ErrBusy),
		errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusConflict
	case errors.Is(err, kiosk.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"error": msg})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
