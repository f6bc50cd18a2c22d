package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
	"github.com/rivercrossing/ferryman/transport/websocket"
)

// Server exposes the solver service over REST and hands WebSocket
// upgrades to the hub.
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer builds a server with all routes registered.
func NewServer(solverService service.SolverService, hub *websocket.Hub) *Server {
	s := &Server{
		service: solverService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// The unified view must be registered before the {id} pattern
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Solver operations
	api.HandleFunc("/sessions/{id}/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/sessions/{id}/outcome", s.handleGetOutcome).Methods("GET")
	api.HandleFunc("/sessions/{id}/plan", s.handleGetPlan).Methods("GET")

	// Scenarios
	api.HandleFunc("/scenarios", s.handleListScenarios).Methods("GET")
	api.HandleFunc("/scenarios", s.handleCreateScenario).Methods("POST")
	api.HandleFunc("/scenarios/{name}", s.handleGetScenario).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Anything else is served from the static directory
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Session Handlers

// handleCreateSession accepts either a catalog reference
// ({"scenario_id": ...}) or a full inline scenario object. An empty
// body falls back to the default scenario.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID   string             `json:"scenario_id,omitempty"`
		ScenarioName string             `json:"scenario_name,omitempty"` // Deprecated, use scenario_id
		Scenario     *scenario.Scenario `json:"scenario,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// An inline scenario wins over a catalog reference
	if req.Scenario != nil {
		session, err := s.service.CreateSessionFromScenario(r.Context(), req.Scenario)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, session)
		return
	}

	scenarioID := req.ScenarioID
	if scenarioID == "" {
		scenarioID = req.ScenarioName
	}

	session, err := s.service.CreateSession(r.Context(), scenarioID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// handleListSessions returns sessions sorted by access or creation
// time. Query parameters: sort=created|accessed, order=asc|desc,
// limit=N.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")
	if sortBy == "" {
		sortBy = "accessed"
	}
	order := query.Get("order")
	if order == "" {
		order = "desc"
	}

	timeOf := func(info *service.SessionInfo) time.Time {
		if sortBy == "created" {
			return info.CreatedAt
		}
		return info.LastAccessedAt
	}
	sort.Slice(sessions, func(i, j int) bool {
		if order == "asc" {
			return timeOf(sessions[i]).Before(timeOf(sessions[j]))
		}
		return timeOf(sessions[i]).After(timeOf(sessions[j]))
	})

	total := len(sessions)
	if limitStr := query.Get("limit"); limitStr != "" {
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
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Solver Operation Handlers

// handleSolve runs the session's scenario. The optional body
// ({"strategy": ..., "force": ...}) overrides the stored strategy or
// forces a re-run.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Strategy string `json:"strategy,omitempty"`
		Force    bool   `json:"force,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	outcome, err := s.service.Solve(r.Context(), sessionID, req.Strategy, req.Force)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Tell the WebSocket watchers
	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, outcome)
	}

	status := "NO_SOLUTION"
	if outcome.Solved {
		status = "SOLVED"
	}
	fmt.Printf("[SOLVE] session=%s strategy=%s crossings=%d expanded=%d elapsed=%dms status=%s\n",
		sessionID, outcome.Strategy, outcome.Crossings, outcome.Stats.Expanded, outcome.ElapsedMS, status)

	respondJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleGetOutcome(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	outcome, err := s.service.GetOutcome(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	plan, err := s.service.GetPlan(r.Context(), sessionID, planOptionsFromQuery(r))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// planOptionsFromQuery reads page/limit/order, keeping the defaults
// for anything absent or unparsable.
func planOptionsFromQuery(r *http.Request) service.PlanOptions {
	opts := service.PlanOptions{
		Page:  1,
		Limit: 20,
		Order: "asc",
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
	return opts
}

// Scenario Handlers

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.service.ListScenarios(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, scenarios)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	// Accept the name with or without the .json extension
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	sc, err := s.service.LoadScenario(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if sc.Name == "" {
		respondError(w, http.StatusBadRequest, "Scenario name is required")
		return
	}

	if err := s.service.SaveScenario(r.Context(), sc.Name, &sc); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save scenario: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Scenario saved successfully",
		"scenario_id": sc.Name,
	})
}

// Unified Sessions Handler

// handleUnifiedSessions aggregates several sessions into one response
// for multi-session dashboards. Selection is by explicit IDs
// (?sessionIds=a,b), by scenario (?scenarioName=...), or everything.
func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo
	switch {
	case query.Get("sessionIds") != "":
		for _, id := range strings.Split(query.Get("sessionIds"), ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if session, err := s.service.GetSession(r.Context(), id); err == nil {
				sessions = append(sessions, session)
			}
		}

	case query.Get("scenarioName") != "":
		all, err := s.service.ListSessions(r.Context())
		if err == nil {
			want := query.Get("scenarioName")
			for _, session := range all {
				if session.ScenarioName == want {
					sessions = append(sessions, session)
				}
			}
		}

	default:
		all, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		sessions = all
	}

	// Summarize: the first session names the scenario, solved sessions
	// are counted across the whole selection
	scenarioName := ""
	puzzle := ""
	solvedCount := 0
	if len(sessions) > 0 {
		scenarioName = sessions[0].ScenarioName
		if sessions[0].Scenario != nil {
			puzzle = sessions[0].Scenario.Puzzle
		}
	}

	entries := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		if session.Outcome != nil && session.Outcome.Solved {
			solvedCount++
		}
		entries = append(entries, map[string]interface{}{
			"session_id":    session.ID,
			"scenario_name": session.ScenarioName,
			"outcome":       session.Outcome,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenario_name": scenarioName,
		"puzzle":        puzzle,
		"solved_count":  solvedCount,
		"sessions":      entries,
	})
}

// WebSocket Handler

// handleWebSocket checks the session exists before upgrading, so a
// typo surfaces as a 404 instead of a silently dead socket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
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
