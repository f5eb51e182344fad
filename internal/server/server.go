// Package server exposes the carrier workflows over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/correos/internal/telemetry"
	"github.com/tournevent/correos/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Correos bridge.
type Server struct {
	port     int
	registry *carrier.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, registry *carrier.Registry, logger *otelzap.Logger) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  telemetry.NewMetrics(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	// Carrier workflows
	mux.HandleFunc("/api/shipments/send", s.handleSend)
	mux.HandleFunc("/api/shipments/labels", s.handleLabels)
	mux.HandleFunc("/api/connection-test", s.handleConnectionTest)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // batches wait for the carrier per shipment
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleSend runs the batch send workflow for the posted shipments.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, c, ok := s.decodeBatch(w, r)
	if !ok {
		s.metrics.RecordRequest("send", "bad_request", time.Since(start).Seconds())
		return
	}

	shipments := shipmentsToModel(req.Shipments)
	result, err := c.SendShipments(r.Context(), shipments)
	if err != nil {
		s.logger.Error("Batch send failed", zap.Error(err))
		s.metrics.RecordRequest("send", "error", time.Since(start).Seconds())
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.metrics.RecordRequest("send", "ok", time.Since(start).Seconds())
	s.metrics.RecordBatch(len(result.Sent), len(result.Labels), len(result.Errors))

	writeJSON(w, http.StatusOK, sendResponse{
		Sent:     result.Sent,
		Labels:   result.Labels,
		Errors:   result.Errors,
		Tracking: trackingByCode(shipments),
	})
}

// handleLabels re-fetches labels for already-sent shipments.
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, c, ok := s.decodeBatch(w, r)
	if !ok {
		s.metrics.RecordRequest("labels", "bad_request", time.Since(start).Seconds())
		return
	}

	shipments := shipmentsToModel(req.Shipments)
	labels, err := c.PrintLabels(r.Context(), shipments)
	if err != nil {
		s.logger.Error("Label reprint failed", zap.Error(err))
		s.metrics.RecordRequest("labels", "error", time.Since(start).Seconds())
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.metrics.RecordRequest("labels", "ok", time.Since(start).Seconds())
	s.metrics.RecordBatch(0, len(labels), 0)

	writeJSON(w, http.StatusOK, labelsResponse{Labels: labels})
}

// handleConnectionTest probes every registered carrier and surfaces each
// status message, successful or not, as a single notification per carrier.
func (s *Server) handleConnectionTest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	messages, errs := s.registry.TestAll(r.Context())
	resp := connectionTestResponse{Messages: messages}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}

	s.metrics.RecordRequest("connection_test", "ok", time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, resp)
}

// decodeBatch parses a batch request and resolves its carrier.
func (s *Server) decodeBatch(w http.ResponseWriter, r *http.Request) (*batchRequest, carrier.Carrier, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return nil, nil, false
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, nil, false
	}
	if len(req.Shipments) == 0 {
		writeError(w, http.StatusBadRequest, "no shipments in request")
		return nil, nil, false
	}

	method := req.Carrier
	if method == "" {
		method = string(carrier.MethodCorreos)
	}
	c, err := s.registry.Get(method)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, nil, false
	}
	return &req, c, true
}

func trackingByCode(shipments []*carrier.Shipment) map[string]string {
	tracking := make(map[string]string)
	for _, sh := range shipments {
		if sh.TrackingRef != "" {
			tracking[sh.Code] = sh.TrackingRef
		}
	}
	return tracking
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
