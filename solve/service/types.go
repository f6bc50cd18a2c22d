package service

import (
	"time"

	"github.com/rivercrossing/ferryman/search"
	"github.com/rivercrossing/ferryman/solve/scenario"
)

// SessionInfo provides information about a solve session
type SessionInfo struct {
	ID             string             `json:"id"`
	ScenarioName   string             `json:"scenario_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Scenario       *scenario.Scenario `json:"scenario"`
	Outcome        *SolveOutcome      `json:"outcome,omitempty"`
}

// SolveOutcome contains the result of a solve operation
type SolveOutcome struct {
	Solved    bool         `json:"solved"`
	Strategy  string       `json:"strategy"`
	Crossings int          `json:"crossings"`
	Plan      []PlanStep   `json:"plan"`
	Stats     search.Stats `json:"stats"`
	ElapsedMS int64        `json:"elapsed_ms"`
	SolvedAt  time.Time    `json:"solved_at"`
}

// PlanStep is one rendered step of a solution plan. The initial step
// carries no action.
type PlanStep struct {
	Index  int    `json:"index"`
	Action string `json:"action,omitempty"`
	State  string `json:"state"`
}

// ProgressEvent represents an event that occurred during a search
type ProgressEvent struct {
	Type      string    `json:"type"` // "node_popped", "child_discovered", "child_discarded", "dead_end", "goal_reached", "solve_finished"
	Message   string    `json:"message"`
	NodeID    int       `json:"node_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PlanOptions configures plan retrieval
type PlanOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// PlanResponse contains a paginated solution plan
type PlanResponse struct {
	Steps       []PlanStep `json:"steps"`
	TotalSteps  int        `json:"total_steps"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	TotalPages  int        `json:"total_pages"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
}

// ScenarioInfo provides information about a solver scenario
type ScenarioInfo struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // The identifier to use for session creation
	Name        string `json:"name"`        // Display name
	Description string `json:"description"`
	Puzzle      string `json:"puzzle"`
	Strategy    string `json:"strategy,omitempty"`
}
