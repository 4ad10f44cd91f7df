package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/text/language"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
	"github.com/wricardo/mcp-training/parkserver/game/service"
	"github.com/wricardo/mcp-training/parkserver/transport/websocket"
)

// maxBodyBytes caps request bodies; a scenario is the largest thing clients send
const maxBodyBytes = 1 << 20

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// Unified sessions for multi-session view (must be before {id} pattern)
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Park operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetParkState).Methods("GET")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/sessions/{id}/tiles/{x}/{y}", s.handleDescribeTile).Methods("GET")

	// Actions and the clock
	api.HandleFunc("/sessions/{id}/actions/query", s.handleQueryAction).Methods("POST")
	api.HandleFunc("/sessions/{id}/actions/execute", s.handleExecuteAction).Methods("POST")
	api.HandleFunc("/sessions/{id}/actions/submit", s.handleSubmitAction).Methods("POST")
	api.HandleFunc("/sessions/{id}/ticks", s.handleAdvanceTicks).Methods("POST")
	api.HandleFunc("/action-types", s.handleActionTypes).Methods("GET")

	// Journal
	api.HandleFunc("/sessions/{id}/journal", s.handleGetJournal).Methods("GET")
	api.HandleFunc("/sessions/{id}/replay", s.handleReplay).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message, "code": status})
}

// respondServiceError maps service errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, action.ErrInvalidParams),
		errors.Is(err, action.ErrUnknownActionType),
		errors.Is(err, service.ErrInvalidTicks),
		errors.Is(err, service.ErrOutOfBounds),
		errors.Is(err, service.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateAction):
		return http.StatusConflict
	case errors.Is(err, service.ErrJournalDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// decodeAction reads an action envelope from the request body
func decodeAction(w http.ResponseWriter, r *http.Request) (action.GameAction, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var env action.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	a, err := action.Decode(env)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return a, true
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SESSION] created id=%s config=%s", session.ID, session.ConfigName)
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Park Handlers

func (s *Server) handleGetParkState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetParkState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, state)
		s.hub.BroadcastEvent(sessionID, websocket.EventReset, nil)
	}
	log.Printf("[RESET] session=%s", sessionID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Park reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetActionHistory(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleDescribeTile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	x, errX := strconv.Atoi(vars["x"])
	y, errY := strconv.Atoi(vars["y"])
	if errX != nil || errY != nil {
		respondError(w, http.StatusBadRequest, "Tile coordinates must be integers")
		return
	}

	tile, err := s.service.DescribeTile(r.Context(), vars["id"], engine.Position{X: x, Y: y})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tile)
}

// Action Handlers

// actionResponse adds the localized failure text to an outcome
type actionResponse struct {
	*service.ActionOutcome
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

func localize(outcome *service.ActionOutcome, tag language.Tag) actionResponse {
	resp := actionResponse{ActionOutcome: outcome}
	if !outcome.Result.OK() {
		resp.Title, resp.Message = outcome.Result.Localize(tag)
	}
	return resp
}

func (s *Server) handleQueryAction(w http.ResponseWriter, r *http.Request) {
	a, ok := decodeAction(w, r)
	if !ok {
		return
	}

	outcome, err := s.service.QueryAction(r.Context(), mux.Vars(r)["id"], a)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, localize(outcome, i18n.ResolveTag(r)))
}

func (s *Server) handleExecuteAction(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	a, ok := decodeAction(w, r)
	if !ok {
		return
	}

	outcome, err := s.service.ExecuteAction(r.Context(), sessionID, a)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logOutcome(sessionID, outcome)
	if outcome.Executed {
		s.broadcastState(r.Context(), sessionID, outcome.Invalidated)
	}

	respondJSON(w, http.StatusOK, localize(outcome, i18n.ResolveTag(r)))
}

func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	a, ok := decodeAction(w, r)
	if !ok {
		return
	}

	receipt, err := s.service.SubmitAction(r.Context(), sessionID, a)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SUBMIT] session=%s type=%s id=%s tick=%d pending=%d",
		sessionID, receipt.ActionType, receipt.ActionID, receipt.Tick, receipt.Pending)
	respondJSON(w, http.StatusAccepted, receipt)
}

func (s *Server) handleAdvanceTicks(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	req := struct {
		Ticks int `json:"ticks"`
	}{Ticks: 1}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := s.service.AdvanceTicks(r.Context(), sessionID, req.Ticks)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	for _, outcome := range report.Executed {
		logOutcome(sessionID, outcome)
	}
	s.BroadcastTick(r.Context(), report)

	tag := i18n.ResolveTag(r)
	executed := make([]actionResponse, len(report.Executed))
	for i, outcome := range report.Executed {
		executed[i] = localize(outcome, tag)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":  report.SessionID,
		"tick":        report.Tick,
		"advanced":    report.Advanced,
		"paused":      report.Paused,
		"executed":    executed,
		"invalidated": report.Invalidated,
	})
}

func (s *Server) handleActionTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"action_types": s.service.ListActionTypes(r.Context()),
	})
}

// Journal Handlers

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var after int64
	if v := query.Get("after"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "after must be a non-negative integer")
			return
		}
		after = n
	}
	limit, _ := strconv.Atoi(query.Get("limit"))

	page, err := s.service.GetJournal(r.Context(), mux.Vars(r)["id"], after, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.ReplaySession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[REPLAY] session=%s entries=%d consistent=%t", report.SessionID, report.Entries, report.Consistent)
	respondJSON(w, http.StatusOK, report)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var scenario engine.ScenarioConfig
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// ?id= picks the file name; the display name is the fallback
	configID := r.URL.Query().Get("id")
	if configID == "" {
		configID = scenario.Name
	}
	if configID == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), configID, &scenario); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": strings.TrimSuffix(configID, ".json"),
	})
}

// Unified Sessions Handler

// unifiedSession is the per-park summary shown side by side in the multi-session view
type unifiedSession struct {
	SessionID    string       `json:"session_id"`
	ConfigName   string       `json:"config_name"`
	Tick         uint32       `json:"tick"`
	Paused       bool         `json:"paused"`
	Cash         engine.Money `json:"cash"`
	Rides        int          `json:"rides"`
	OwnedTiles   int          `json:"owned_tiles"`
	TotalActions int          `json:"total_actions"`
	Pending      int          `json:"pending_actions"`
	CreatedAt    time.Time    `json:"created_at"`
	LastAccessed time.Time    `json:"last_accessed"`
}

func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		for _, id := range strings.Split(sessionIDs, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if session, err := s.service.GetSession(r.Context(), id); err == nil {
				sessions = append(sessions, session)
			}
		}
	} else {
		allSessions, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		configName := query.Get("configName")
		for _, session := range allSessions {
			if configName == "" || session.ConfigName == configName {
				sessions = append(sessions, session)
			}
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	configName := ""
	if len(sessions) > 0 {
		configName = sessions[0].ConfigName
	}

	summaries := make([]unifiedSession, 0, len(sessions))
	for _, session := range sessions {
		summary := unifiedSession{
			SessionID:    session.ID,
			ConfigName:   session.ConfigName,
			Pending:      session.PendingActions,
			CreatedAt:    session.CreatedAt,
			LastAccessed: session.LastAccessedAt,
		}
		if ps := session.ParkState; ps != nil {
			summary.Tick = ps.Tick
			summary.Paused = ps.Paused
			summary.Cash = ps.Finance.Cash
			summary.Rides = len(ps.Rides)
			summary.OwnedTiles = engine.CountOwnership(ps.Tiles, engine.Owned)
			summary.TotalActions = ps.TotalActions
		}
		summaries = append(summaries, summary)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"config_name": configName,
		"count":       len(summaries),
		"sessions":    summaries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket disabled", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// logOutcome writes a compact line per executed or rejected action
func logOutcome(sessionID string, outcome *service.ActionOutcome) {
	status := "OK"
	if !outcome.Executed {
		status = strings.ToUpper(string(outcome.Result.Status))
	}
	log.Printf("[ACTION] session=%s tick=%d type=%s id=%s cost=%s cash=%s status=%s",
		sessionID, outcome.Tick, outcome.ActionType, outcome.ActionID,
		engine.FormatMoney(outcome.Result.Cost), engine.FormatMoney(outcome.Cash), status)
}
