package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves the health endpoint next to the static document tree.
type Handler struct {
	scriptPath string
	scriptSrc  string
	clock      func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler that reports on the generated config script
// at scriptPath, advertised to clients under scriptSrc.
func NewHandler(scriptPath, scriptSrc string, opts ...HandlerOption) *Handler {
	h := &Handler{
		scriptPath: scriptPath,
		scriptSrc:  scriptSrc,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// handleHealth reports readiness. The config script must exist before the
// server accepts traffic; a missing script means the startup ordering was
// violated (for example the file was removed at runtime), reported as 503.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:       "ok",
		ConfigScript: h.scriptSrc,
		Timestamp:    h.clock(),
	}

	if _, err := os.Stat(h.scriptPath); err != nil {
		resp.Status = "degraded"
		resp.Details = "config script is not readable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status       string    `json:"status"`
	ConfigScript string    `json:"configScript"`
	Timestamp    time.Time `json:"timestamp"`
	Details      string    `json:"details,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
