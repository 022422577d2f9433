package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/rogue-engine/internal/logger"
	"github.com/jwebster45206/rogue-engine/internal/storage"
	"github.com/jwebster45206/rogue-engine/pkg/game"
	"github.com/jwebster45206/rogue-engine/pkg/registry"
	"github.com/jwebster45206/rogue-engine/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse is the shared response shape for session endpoints.
// Result and Events are populated only by the action endpoint.
type SessionResponse struct {
	GameState *state.GameState `json:"game_state"`
	Result    *game.Result     `json:"result,omitempty"`
	Events    []game.Event     `json:"events,omitempty"`
}

// SessionHandler handles HTTP requests for game sessions.
// Routes:
// POST /v1/session               - Create a new session
// GET /v1/session/{id}           - Read a session by ID
// DELETE /v1/session/{id}        - Delete a session by ID
// POST /v1/session/{id}/action   - Apply one player action
type SessionHandler struct {
	storage storage.Storage
	reg     *registry.Registry
	logger  *slog.Logger

	// seed fixes world generation for every session; zero lets each
	// session pick its own.
	seed int64
}

func NewSessionHandler(reg *registry.Registry, storage storage.Storage, seed int64, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		reg:     reg,
		logger:  logger,
		seed:    seed,
	}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log := logger.WithRequestID(h.logger, uuid.NewString())

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/session"), "/")
	parts := []string{}
	if path != "" {
		parts = strings.Split(path, "/")
	}

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r, log)
		return

	case len(parts) >= 1:
		id, err := uuid.Parse(parts[0])
		if err != nil {
			logger.WithError(log, err).Warn("Invalid session ID", "id", parts[0])
			writeError(w, log, http.StatusBadRequest, "Invalid session ID format")
			return
		}

		if len(parts) == 2 && parts[1] == "action" && r.Method == http.MethodPost {
			h.handleAction(w, r, log, id)
			return
		}
		if len(parts) == 1 {
			switch r.Method {
			case http.MethodGet:
				h.handleRead(w, r, log, id)
				return
			case http.MethodDelete:
				h.handleDelete(w, r, log, id)
				return
			}
		}
	}

	log.Warn("Method not allowed for session endpoint", "method", r.Method, "path", r.URL.Path)
	writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed")
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	log.Debug("Creating new session")

	seed := h.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	collector := &game.EventCollector{}
	engine, err := game.NewSession(seed, h.reg, collector, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to create session")
		writeError(w, log, http.StatusInternalServerError, "Failed to create session")
		return
	}

	gs := engine.State()
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		logger.WithError(log, err).Error("Failed to save new session", "uuid", gs.ID)
		writeError(w, log, http.StatusInternalServerError, "Failed to save session")
		return
	}

	log.Info("Session created", "uuid", gs.ID, "seed", seed)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, log, SessionResponse{GameState: gs, Events: collector.Events})
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load session", "uuid", id)
		writeError(w, log, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if gs == nil {
		writeError(w, log, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, log, SessionResponse{GameState: gs})
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		logger.WithError(log, err).Error("Failed to delete session", "uuid", id)
		writeError(w, log, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleAction(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	var action game.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		logger.WithError(log, err).Warn("Invalid JSON in action request", "uuid", id)
		writeError(w, log, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load session", "uuid", id)
		writeError(w, log, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if gs == nil {
		writeError(w, log, http.StatusNotFound, "Session not found")
		return
	}

	collector := &game.EventCollector{}
	engine, err := game.NewEngine(gs, h.reg, collector, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to build engine for session", "uuid", id)
		writeError(w, log, http.StatusInternalServerError, "Failed to resume session")
		return
	}

	result, err := engine.Apply(action)
	if err != nil {
		logger.WithError(log, err).Warn("Rejected action", "uuid", id, "kind", action.Kind)
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.storage.SaveGameState(r.Context(), id, gs); err != nil {
		logger.WithError(log, err).Error("Failed to save session after action", "uuid", id)
		writeError(w, log, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, log, SessionResponse{
		GameState: gs,
		Result:    result,
		Events:    collector.Events,
	})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, code int, msg string) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		log.Error("Failed to encode error response", "error", err)
	}
}
