// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP boundary of the feedback pipeline: it frames the
// widget's JSON submission, validates it at ingress, invokes the fan-out
// handler, and serializes the aggregated result. Connectors never see a
// record that failed validation here.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"feedbackflow/platform/feedback"
	"feedbackflow/platform/handler"
	"feedbackflow/platform/shared/logger"
)

// Server wires the HTTP routes to the feedback handler.
type Server struct {
	handler *handler.FeedbackHandler
	logger  *logger.Logger
}

// NewServer creates the API server over h.
func NewServer(h *handler.FeedbackHandler) *Server {
	return &Server{
		handler: h,
		logger:  logger.New("feedback-api"),
	}
}

// Router builds the HTTP handler, CORS included. The widget runs on the
// documentation site's origin, which is generally not the API's origin.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"}, // Configure for production
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/feedback", s.submitFeedbackHandler).Methods("POST")
	r.HandleFunc("/api/feedback/health", s.connectorHealthHandler).Methods("GET")
	r.HandleFunc("/api/feedback/analytics", s.analyticsHandler).Methods("GET")

	return c.Handler(r)
}

// feedbackResponse is the wire shape returned to the widget.
type feedbackResponse struct {
	Success  bool              `json:"success"`
	ID       string            `json:"id,omitempty"`
	Error    string            `json:"error,omitempty"`
	Metadata *responseMetadata `json:"metadata,omitempty"`
}

type responseMetadata struct {
	ConnectorsUsed int                       `json:"connectorsUsed"`
	Results        []handler.ConnectorResult `json:"results"`
}

func (s *Server) submitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var rec feedback.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeJSON(w, http.StatusBadRequest, feedbackResponse{
			Success: false,
			Error:   "invalid JSON payload",
		})
		return
	}

	// Validation happens exactly once, here, before any connector is asked
	// to store the record.
	if err := rec.Validate(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, feedbackResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	result := s.handler.ProcessFeedback(r.Context(), &rec)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	// The correlation id is returned on failure too; it is the reference a
	// user can quote to support.
	s.writeJSON(w, status, feedbackResponse{
		Success: result.Success,
		ID:      result.CorrelationID,
		Error:   result.Error,
		Metadata: &responseMetadata{
			ConnectorsUsed: len(result.Results),
			Results:        result.Results,
		},
	})
}

func (s *Server) connectorHealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"connectors": s.handler.RegisteredConnectors(),
		"health":     s.handler.HealthStatus(ctx),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"analytics": s.handler.Analytics(r.Context()),
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "feedbackflow",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.ErrorWithErr("", "failed to encode response", err, nil)
	}
}
