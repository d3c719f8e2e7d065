package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"news_moves/internal/domain"
	"news_moves/internal/logger"
)

// Provider is the part of the provider service exposed over HTTP.
type Provider interface {
	RunCycle(ctx context.Context) domain.CycleResult
	LastResult() (domain.CycleResult, bool)
}

// History lists journaled cycle results, newest first.
type History interface {
	Recent(ctx context.Context, limit int64) ([]domain.CycleResult, error)
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// ProviderHandler exposes manual triggering and status of the provider.
type ProviderHandler struct {
	provider Provider
	history  History
	timeout  time.Duration
	log      *logger.Logger
}

// NewProviderHandler creates the handler. history may be nil when no journal
// is configured; /history then answers 404.
func NewProviderHandler(provider Provider, history History, timeout time.Duration, log *logger.Logger) *ProviderHandler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if log == nil {
		log = logger.Discard()
	}
	return &ProviderHandler{provider: provider, history: history, timeout: timeout, log: log}
}

// Routes registers the handler's endpoints.
func (h *ProviderHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/run", h.HandleRun)
	mux.HandleFunc("/status", h.HandleStatus)
	mux.HandleFunc("/history", h.HandleHistory)
	mux.HandleFunc("/healthz", h.HandleHealth)
	return mux
}

// HandleRun runs one cycle synchronously and returns its result.
func (h *ProviderHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.log.Info("cycle triggered over HTTP", "remote", r.RemoteAddr)
	result := h.provider.RunCycle(ctx)

	status := http.StatusOK
	if result.Status == domain.StatusSubmitFailed {
		status = http.StatusBadGateway
	}
	writeJSONResponse(w, status, result)
}

func (h *ProviderHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, ok := h.provider.LastResult()
	if !ok {
		writeJSONResponse(w, http.StatusOK, map[string]interface{}{
			"message": "no cycle has run yet",
		})
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

// HandleHistory returns up to ?limit= journaled results.
func (h *ProviderHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		http.Error(w, "Journal is not configured", http.StatusNotFound)
		return
	}

	limit := int64(defaultHistoryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > maxHistoryLimit {
			http.Error(w, "Invalid limit. Must be between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.log.Error("failed to read journal", "error", err)
		http.Error(w, "Failed to read journal", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []domain.CycleResult{}
	}
	writeJSONResponse(w, http.StatusOK, results)
}

func (h *ProviderHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
