package service

import (
	"context"
	"errors"
	"time"

	"github.com/rivercrossing/ferryman/solve/scenario"
)

// ErrNotSolved is returned when a session's plan or outcome is
// requested before the session has been solved.
var ErrNotSolved = errors.New("session has not been solved yet")

// SolverService defines all solver-related operations
type SolverService interface {
	// Session Management
	CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error)
	CreateSessionFromScenario(ctx context.Context, sc *scenario.Scenario) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Solver Operations
	Solve(ctx context.Context, sessionID, strategy string, force bool) (*SolveOutcome, error)
	GetOutcome(ctx context.Context, sessionID string) (*SolveOutcome, error)
	GetPlan(ctx context.Context, sessionID string, opts PlanOptions) (*PlanResponse, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*ScenarioInfo, error)
	LoadScenario(ctx context.Context, scenarioName string) (*scenario.Scenario, error)
	SaveScenario(ctx context.Context, scenarioName string, sc *scenario.Scenario) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, sc *scenario.Scenario) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, sc *scenario.Scenario) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ScenarioCatalog handles scenario loading
type ScenarioCatalog interface {
	Load(name string) (*scenario.Scenario, error)
	List() ([]*ScenarioInfo, error)
	GetDefault() *scenario.Scenario
	Save(name string, sc *scenario.Scenario) error
}

// ProgressNotifier receives search progress events for live transports
type ProgressNotifier interface {
	NotifyProgress(sessionID string, event ProgressEvent)
}

// Session represents an active solve session
type Session struct {
	ID             string
	Scenario       *scenario.Scenario
	CreatedAt      time.Time
	LastAccessedAt time.Time
	Outcome        *SolveOutcome
}
