package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"waxscope/internal/model"
)

// TriggerFunc runs one ingestion end to end. It fails only on a pre-flight
// error; partial source or store failures land inside the summary.
type TriggerFunc func(ctx context.Context) (model.RunSummary, error)

// Server exposes the ingestion trigger over HTTP.
type Server struct {
	trigger TriggerFunc
	logger  *zap.Logger
	http    *http.Server
}

// New builds a Server listening on addr.
func New(addr string, trigger TriggerFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{trigger: trigger, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/ingest", s.handleIngest)
	mux.HandleFunc("/healthz", handleHealth)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Handler returns the underlying handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

type triggerResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Stats   *model.RunSummary `json:"stats,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type")
}

// handleIngest triggers one run. OPTIONS answers the cross-origin pre-flight
// with no body; any other verb runs the ingestion.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	summary, err := s.trigger(r.Context())
	if err != nil {
		s.logger.Error("ingestion trigger failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, triggerResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, triggerResponse{
		Success: true,
		Message: "Data collection completed",
		Stats:   &summary,
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body triggerResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
