package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rivercrossing/ferryman/puzzle/bridgetorch"
	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/puzzle/wolfgoatcabbage"
	"github.com/rivercrossing/ferryman/search"
	"github.com/rivercrossing/ferryman/solve/scenario"
)

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	sessions  SessionManager
	scenarios ScenarioCatalog
	notifier  ProgressNotifier
	mu        sync.RWMutex
}

// NewSolverService creates a new solver service instance
func NewSolverService(sessions SessionManager, scenarios ScenarioCatalog) SolverService {
	return &solverServiceImpl{
		sessions:  sessions,
		scenarios: scenarios,
	}
}

// NewSolverServiceWithNotifier creates a new solver service that
// forwards search progress to the given notifier
func NewSolverServiceWithNotifier(sessions SessionManager, scenarios ScenarioCatalog, notifier ProgressNotifier) SolverService {
	return &solverServiceImpl{
		sessions:  sessions,
		scenarios: scenarios,
		notifier:  notifier,
	}
}

// getScenarioID returns the scenario_id for a given scenario name, used for consistent API responses
func (s *solverServiceImpl) getScenarioID(scenarioName string) string {
	available, err := s.scenarios.List()
	if err == nil {
		for _, info := range available {
			if info.Name == scenarioName {
				return info.ScenarioID
			}
		}
	}
	// Fallback: return as-is or "default"
	if scenarioName == "" {
		return "default"
	}
	return scenarioName
}

// CreateSession creates a new solve session
func (s *solverServiceImpl) CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load scenario
	var sc *scenario.Scenario
	var err error
	if scenarioName != "" {
		sc, err = s.scenarios.Load(scenarioName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "scenario not found") {
				available, listErr := s.scenarios.List()
				if listErr == nil && len(available) > 0 {
					var scenarioIDs []string
					for _, info := range available {
						scenarioIDs = append(scenarioIDs, info.ScenarioID)
					}
					return nil, fmt.Errorf("scenario '%s' not found. Available scenarios: %v", scenarioName, scenarioIDs)
				}
				return nil, fmt.Errorf("scenario '%s' not found. Use /api/scenarios to list available scenarios", scenarioName)
			}
			return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioName, err)
		}
	} else {
		sc = s.scenarios.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the scenario identifier to return - prefer the input name if provided,
	// otherwise look up the scenario_id by display name
	scenarioID := scenarioName
	if scenarioID == "" {
		scenarioID = s.getScenarioID(sc.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ScenarioName:   scenarioID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Scenario:       session.Scenario,
		Outcome:        session.Outcome,
	}, nil
}

// CreateSessionFromScenario creates a session from an ad-hoc scenario
// that is not part of the catalog
func (s *solverServiceImpl) CreateSessionFromScenario(ctx context.Context, sc *scenario.Scenario) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sc == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if err := scenario.Validate(sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	session, err := s.sessions.Create("", sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SessionInfo{
		ID:             session.ID,
		ScenarioName:   s.getScenarioID(sc.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Scenario:       session.Scenario,
		Outcome:        session.Outcome,
	}, nil
}

// GetSession retrieves session information
func (s *solverServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ScenarioName:   s.getScenarioID(session.Scenario.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Scenario:       session.Scenario,
		Outcome:        session.Outcome,
	}, nil
}

// ListSessions returns all active sessions
func (s *solverServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ScenarioName:   s.getScenarioID(sess.Scenario.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			Scenario:       sess.Scenario,
			Outcome:        sess.Outcome,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *solverServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Solve runs the session's scenario through the search engine and
// stores the outcome on the session. A session that already has an
// outcome keeps it unless force is set. A non-empty strategy overrides
// the scenario's strategy for this run only.
func (s *solverServiceImpl) Solve(ctx context.Context, sessionID, strategy string, force bool) (*SolveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if sess.Outcome != nil && !force {
		return sess.Outcome, nil
	}

	var order search.Order
	if strategy != "" {
		order, err = search.ParseOrder(strategy)
	} else {
		order, err = sess.Scenario.Order()
	}
	if err != nil {
		return nil, fmt.Errorf("invalid strategy: %w", err)
	}

	outcome, err := s.solveScenario(ctx, sessionID, sess.Scenario, order)
	if err != nil {
		return nil, err
	}

	sess.Outcome = outcome

	if s.notifier != nil {
		message := "No solution found"
		if outcome.Solved {
			message = fmt.Sprintf("Solved in %d crossings", outcome.Crossings)
		}
		s.notifier.NotifyProgress(sessionID, ProgressEvent{
			Type:      "solve_finished",
			Message:   message,
			Timestamp: time.Now(),
		})
	}

	// Auto-save session after solve
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after solve: %v\n", sessionID, err)
	}

	return outcome, nil
}

// GetOutcome returns the outcome of the most recent solve
func (s *solverServiceImpl) GetOutcome(ctx context.Context, sessionID string) (*SolveOutcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if sess.Outcome == nil {
		return nil, ErrNotSolved
	}

	return sess.Outcome, nil
}

// GetPlan returns a paginated view of the most recent solution plan
func (s *solverServiceImpl) GetPlan(ctx context.Context, sessionID string, opts PlanOptions) (*PlanResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if sess.Outcome == nil {
		return nil, ErrNotSolved
	}

	plan := sess.Outcome.Plan
	total := len(plan)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "asc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of steps
	var steps []PlanStep
	if opts.Order == "desc" {
		// Reverse order (goal first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			steps = append(steps, plan[i])
		}
	} else {
		// Normal root-to-goal order
		if start < total {
			steps = plan[start:end]
		}
	}

	// Ensure steps is not nil
	if steps == nil {
		steps = []PlanStep{}
	}

	return &PlanResponse{
		Steps:       steps,
		TotalSteps:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListScenarios returns available scenarios
func (s *solverServiceImpl) ListScenarios(ctx context.Context) ([]*ScenarioInfo, error) {
	return s.scenarios.List()
}

// LoadScenario loads a specific scenario
func (s *solverServiceImpl) LoadScenario(ctx context.Context, scenarioName string) (*scenario.Scenario, error) {
	return s.scenarios.Load(scenarioName)
}

// SaveScenario saves a scenario to disk
func (s *solverServiceImpl) SaveScenario(ctx context.Context, scenarioName string, sc *scenario.Scenario) error {
	return s.scenarios.Save(scenarioName, sc)
}

// solveScenario dispatches the scenario to its puzzle's search
func (s *solverServiceImpl) solveScenario(ctx context.Context, sessionID string, sc *scenario.Scenario, order search.Order) (*SolveOutcome, error) {
	started := time.Now()

	switch sc.Puzzle {
	case scenario.PuzzleHumansZombies:
		result, err := humanszombies.Solve(ctx, *sc.HumansZombies, search.Options[humanszombies.WorldState, humanszombies.Move]{
			Order:    order,
			MaxNodes: sc.MaxNodes,
			Observer: newProgressObserver[humanszombies.WorldState, humanszombies.Move](s.notifier, sessionID),
		})
		if err != nil {
			return nil, err
		}
		return buildOutcome(result, order, time.Since(started), humanszombies.RenderState, humanszombies.RenderAction), nil

	case scenario.PuzzleWolfGoatCabbage:
		result, err := wolfgoatcabbage.Solve(ctx, *sc.WolfGoatCabbage, search.Options[wolfgoatcabbage.WorldState, wolfgoatcabbage.Move]{
			Order:    order,
			MaxNodes: sc.MaxNodes,
			Observer: newProgressObserver[wolfgoatcabbage.WorldState, wolfgoatcabbage.Move](s.notifier, sessionID),
		})
		if err != nil {
			return nil, err
		}
		return buildOutcome(result, order, time.Since(started), wolfgoatcabbage.RenderState, wolfgoatcabbage.RenderAction), nil

	case scenario.PuzzleBridgeTorch:
		result, err := bridgetorch.Solve(ctx, *sc.BridgeTorch, search.Options[bridgetorch.WorldState, bridgetorch.Move]{
			Order:    order,
			MaxNodes: sc.MaxNodes,
			Observer: newProgressObserver[bridgetorch.WorldState, bridgetorch.Move](s.notifier, sessionID),
		})
		if err != nil {
			return nil, err
		}
		return buildOutcome(result, order, time.Since(started), bridgetorch.RenderState, bridgetorch.RenderAction), nil

	default:
		return nil, fmt.Errorf("unknown puzzle %q", sc.Puzzle)
	}
}

// buildOutcome renders a search result into a transport-friendly outcome
func buildOutcome[S, A any](result *search.Result[S, A], order search.Order, elapsed time.Duration, renderState func(S) string, renderAction func(A, S) string) *SolveOutcome {
	outcome := &SolveOutcome{
		Solved:    result.Solved,
		Strategy:  order.String(),
		Stats:     result.Stats,
		ElapsedMS: elapsed.Milliseconds(),
		SolvedAt:  time.Now(),
		Plan:      make([]PlanStep, 0, len(result.Plan)),
	}

	for i, step := range result.Plan {
		planStep := PlanStep{Index: i, State: renderState(step.State)}
		if step.Action != nil {
			planStep.Action = renderAction(*step.Action, step.State)
			outcome.Crossings++
		}
		outcome.Plan = append(outcome.Plan, planStep)
	}

	return outcome
}

// progressObserver forwards search notifications as progress events
type progressObserver[S, A any] struct {
	notifier  ProgressNotifier
	sessionID string
}

// newProgressObserver returns an observer bound to the notifier, or
// nil when no notifier is configured
func newProgressObserver[S, A any](notifier ProgressNotifier, sessionID string) search.Observer[S, A] {
	if notifier == nil {
		return nil
	}
	return &progressObserver[S, A]{notifier: notifier, sessionID: sessionID}
}

func (o *progressObserver[S, A]) NodePopped(entry *search.Entry[S, A]) {
	o.notify("node_popped", fmt.Sprintf("Exploring state %d: %v", entry.ID, entry.State), entry.ID)
}

func (o *progressObserver[S, A]) ChildDiscovered(entry *search.Entry[S, A]) {
	o.notify("child_discovered", fmt.Sprintf("Move %v leads to state %v", *entry.Action, entry.State), entry.ID)
}

func (o *progressObserver[S, A]) ChildDiscarded(parent *search.Entry[S, A], action A, child S) {
	o.notify("child_discarded", fmt.Sprintf("Ignored %v (duplicate)", child), parent.ID)
}

func (o *progressObserver[S, A]) DeadEnd(entry *search.Entry[S, A]) {
	o.notify("dead_end", fmt.Sprintf("State %d could not be expanded", entry.ID), entry.ID)
}

func (o *progressObserver[S, A]) GoalReached(entry *search.Entry[S, A]) {
	o.notify("goal_reached", fmt.Sprintf("Goal reached at state %d", entry.ID), entry.ID)
}

func (o *progressObserver[S, A]) notify(eventType, message string, nodeID int) {
	o.notifier.NotifyProgress(o.sessionID, ProgressEvent{
		Type:      eventType,
		Message:   message,
		NodeID:    nodeID,
		Timestamp: time.Now(),
	})
}
