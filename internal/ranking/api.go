package ranking

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

// maxBodyBytes limits POST bodies.
const maxBodyBytes = 4096

// Handler serves a Store as the leaderboard HTTP API.
type Handler struct {
	store  Store
	logger *log.Logger
}

// NewHandler creates the API handler. A nil logger discards output.
func NewHandler(store Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{store: store, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type successBody struct {
	Success bool `json:"success"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Top(r.Context(), MaxEntries)
	if err != nil {
		h.logger.Error("Cannot list rankings", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch rankings"})
		return
	}

	out := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, wireEntry{Name: e.Name, Score: e.Score, Level: e.Level})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var body wireEntry
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	name := CleanName(body.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Name is required"})
		return
	}

	e := body.entry()
	e.Name = name
	if err := h.store.Submit(r.Context(), e); err != nil {
		h.logger.Error("Cannot save ranking", "name", name, "score", e.Score, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to save ranking"})
		return
	}

	h.logger.Info("Ranking saved", "name", name, "score", e.Score, "level", e.Level)
	writeJSON(w, http.StatusOK, successBody{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
