package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/search"
	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, sc *scenario.Scenario) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	session := &service.Session{
		ID:             id,
		Scenario:       sc,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, sc *scenario.Scenario) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, sc)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	// Mock save - in real implementation this would persist to disk
	return nil
}

// MockScenarioCatalog implements service.ScenarioCatalog for testing
type MockScenarioCatalog struct {
	scenarios map[string]*scenario.Scenario
}

func NewMockScenarioCatalog() *MockScenarioCatalog {
	classic := &scenario.Scenario{
		Name:        "Test Scenario",
		Description: "Test scenario",
		Puzzle:      scenario.PuzzleHumansZombies,
		Strategy:    "bfs",
		HumansZombies: &humanszombies.Config{
			Humans: 3, Zombies: 3, BoatCapacity: 2,
		},
	}

	hopeless := &scenario.Scenario{
		Name:        "Hopeless Scenario",
		Description: "A one-seat boat cannot move six passengers",
		Puzzle:      scenario.PuzzleHumansZombies,
		HumansZombies: &humanszombies.Config{
			Humans: 3, Zombies: 3, BoatCapacity: 1,
		},
	}

	budget := &scenario.Scenario{
		Name:        "Budget Scenario",
		Description: "Classic puzzle with a tiny node budget",
		Puzzle:      scenario.PuzzleHumansZombies,
		MaxNodes:    1,
		HumansZombies: &humanszombies.Config{
			Humans: 3, Zombies: 3, BoatCapacity: 2,
		},
	}

	return &MockScenarioCatalog{
		scenarios: map[string]*scenario.Scenario{
			"classic":  classic,
			"default":  classic,
			"hopeless": hopeless,
			"budget":   budget,
		},
	}
}

func (m *MockScenarioCatalog) Load(name string) (*scenario.Scenario, error) {
	sc, exists := m.scenarios[name]
	if !exists {
		return nil, errors.New("scenario not found")
	}
	return sc, nil
}

func (m *MockScenarioCatalog) List() ([]*service.ScenarioInfo, error) {
	result := make([]*service.ScenarioInfo, 0, len(m.scenarios))
	for name, sc := range m.scenarios {
		result = append(result, &service.ScenarioInfo{
			Filename:    name + ".json",
			ScenarioID:  name,
			Name:        sc.Name,
			Description: sc.Description,
			Puzzle:      sc.Puzzle,
			Strategy:    sc.Strategy,
		})
	}
	return result, nil
}

func (m *MockScenarioCatalog) GetDefault() *scenario.Scenario {
	return m.scenarios["default"]
}

func (m *MockScenarioCatalog) Save(name string, sc *scenario.Scenario) error {
	m.scenarios[name] = sc
	return nil
}

// RecordingNotifier collects progress events for assertions
type RecordingNotifier struct {
	events []service.ProgressEvent
}

func (n *RecordingNotifier) NotifyProgress(sessionID string, event service.ProgressEvent) {
	n.events = append(n.events, event)
}

func (n *RecordingNotifier) typeCounts() map[string]int {
	counts := make(map[string]int)
	for _, ev := range n.events {
		counts[ev.Type]++
	}
	return counts
}

// Test cases
func TestSolverService_CreateSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	tests := []struct {
		name         string
		scenarioName string
		wantErr      bool
	}{
		{
			name:         "create with default scenario",
			scenarioName: "",
			wantErr:      false,
		},
		{
			name:         "create with specific scenario",
			scenarioName: "classic",
			wantErr:      false,
		},
		{
			name:         "create with unknown scenario",
			scenarioName: "nonexistent",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.scenarioName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && session == nil {
				t.Error("CreateSession() returned nil session")
			}
		})
	}

	// The specific-scenario session should report the scenario ID it
	// was created with and start without an outcome
	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if info.ScenarioName != "classic" {
		t.Errorf("ScenarioName = %q, want %q", info.ScenarioName, "classic")
	}
	if info.Scenario == nil {
		t.Error("SessionInfo carries no scenario")
	}
	if info.Outcome != nil {
		t.Errorf("new session already has an outcome: %+v", info.Outcome)
	}
}

func TestSolverService_Solve(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	outcome, err := svc.Solve(ctx, info.ID, "", false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !outcome.Solved {
		t.Fatal("Solve() found no plan for the classic scenario")
	}
	if outcome.Crossings != 11 {
		t.Errorf("Crossings = %d, want 11", outcome.Crossings)
	}
	if len(outcome.Plan) != 12 {
		t.Errorf("plan has %d steps, want 12", len(outcome.Plan))
	}
	if outcome.Strategy != "bfs" {
		t.Errorf("Strategy = %q, want %q", outcome.Strategy, "bfs")
	}
	if outcome.Stats.Expanded == 0 {
		t.Error("Stats.Expanded = 0, want > 0")
	}
	if outcome.Plan[0].Action != "" {
		t.Errorf("first plan step has action %q, want none", outcome.Plan[0].Action)
	}
	if outcome.Plan[len(outcome.Plan)-1].Action == "" {
		t.Error("last plan step has no action")
	}

	// The outcome must be retrievable afterwards
	stored, err := svc.GetOutcome(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetOutcome() error = %v", err)
	}
	if stored.Crossings != outcome.Crossings {
		t.Errorf("stored outcome differs: %d crossings, want %d", stored.Crossings, outcome.Crossings)
	}

	// Unknown session
	if _, err := svc.Solve(ctx, "nonexistent", "", false); err == nil {
		t.Error("Solve() with unknown session should fail")
	}
}

func TestSolverService_SolveIdempotent(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	first, err := svc.Solve(ctx, info.ID, "", false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	// A second solve without force returns the stored outcome instead
	// of searching again
	second, err := svc.Solve(ctx, info.ID, "", false)
	if err != nil {
		t.Fatalf("repeat Solve() error = %v", err)
	}
	if first != second {
		t.Error("repeat Solve() ran the search again instead of returning the stored outcome")
	}

	// Even a different strategy does not re-run without force
	third, err := svc.Solve(ctx, info.ID, "dfs", false)
	if err != nil {
		t.Fatalf("Solve() with strategy error = %v", err)
	}
	if third != first {
		t.Error("Solve() with a new strategy but no force re-ran the search")
	}

	// Force re-runs and replaces the stored outcome
	forced, err := svc.Solve(ctx, info.ID, "dfs", true)
	if err != nil {
		t.Fatalf("forced Solve() error = %v", err)
	}
	if forced == first {
		t.Error("forced Solve() returned the stale outcome")
	}
	if forced.Strategy != "dfs" {
		t.Errorf("forced Strategy = %q, want %q", forced.Strategy, "dfs")
	}

	stored, err := svc.GetOutcome(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetOutcome() error = %v", err)
	}
	if stored.Strategy != "dfs" {
		t.Errorf("stored Strategy = %q, want the forced run's %q", stored.Strategy, "dfs")
	}
}

func TestSolverService_SolveStrategyOverride(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// The scenario says bfs but the caller asks for dfs
	outcome, err := svc.Solve(ctx, info.ID, "dfs", false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if outcome.Strategy != "dfs" {
		t.Errorf("Strategy = %q, want %q", outcome.Strategy, "dfs")
	}
	if !outcome.Solved {
		t.Error("depth-first search found no plan for the classic scenario")
	}

	// Unknown strategies are rejected before any search runs
	fresh, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if _, err := svc.Solve(ctx, fresh.ID, "ucs", false); err == nil {
		t.Error("Solve() accepted an unknown strategy")
	}
	if _, err := svc.GetOutcome(ctx, fresh.ID); !errors.Is(err, service.ErrNotSolved) {
		t.Errorf("GetOutcome() after rejected strategy error = %v, want %v", err, service.ErrNotSolved)
	}
}

func TestSolverService_CreateSessionFromScenario(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	adhoc := &scenario.Scenario{
		Name:        "Small Crossing",
		Description: "Two of each, ad hoc",
		Puzzle:      scenario.PuzzleHumansZombies,
		HumansZombies: &humanszombies.Config{
			Humans: 2, Zombies: 2, BoatCapacity: 2,
		},
	}

	info, err := svc.CreateSessionFromScenario(ctx, adhoc)
	if err != nil {
		t.Fatalf("CreateSessionFromScenario() error = %v", err)
	}
	if info.Scenario == nil || info.Scenario.Name != "Small Crossing" {
		t.Errorf("session scenario = %+v, want the ad-hoc one", info.Scenario)
	}

	// The session solves like any catalog-backed one
	outcome, err := svc.Solve(ctx, info.ID, "", false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !outcome.Solved {
		t.Error("ad-hoc scenario did not solve")
	}

	// Nil and invalid scenarios are rejected
	if _, err := svc.CreateSessionFromScenario(ctx, nil); err == nil {
		t.Error("CreateSessionFromScenario() accepted a nil scenario")
	}

	invalid := &scenario.Scenario{
		Name:        "Broken",
		Description: "Wrong kind of puzzle",
		Puzzle:      "towers-of-hanoi",
	}
	if _, err := svc.CreateSessionFromScenario(ctx, invalid); err == nil {
		t.Error("CreateSessionFromScenario() accepted an unknown puzzle")
	}
}

func TestSolverService_SolveUnsolvable(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "hopeless")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	outcome, err := svc.Solve(ctx, info.ID, "", false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if outcome.Solved {
		t.Error("Solve() claims the hopeless scenario is solvable")
	}
	if len(outcome.Plan) != 0 {
		t.Errorf("unsolvable outcome carries a %d-step plan", len(outcome.Plan))
	}
	if outcome.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", outcome.Crossings)
	}
}

func TestSolverService_SolveNodeLimit(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "budget")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	_, err = svc.Solve(ctx, info.ID, "", false)
	if !errors.Is(err, search.ErrNodeLimit) {
		t.Errorf("Solve() error = %v, want %v", err, search.ErrNodeLimit)
	}
}

func TestSolverService_GetOutcome(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Before solving
	_, err = svc.GetOutcome(ctx, info.ID)
	if !errors.Is(err, service.ErrNotSolved) {
		t.Errorf("GetOutcome() before solve error = %v, want %v", err, service.ErrNotSolved)
	}

	if _, err := svc.Solve(ctx, info.ID, "", false); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	outcome, err := svc.GetOutcome(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetOutcome() error = %v", err)
	}
	if outcome == nil || !outcome.Solved {
		t.Errorf("GetOutcome() = %+v, want a solved outcome", outcome)
	}
}

func TestSolverService_GetPlan(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Before solving
	_, err = svc.GetPlan(ctx, info.ID, service.PlanOptions{})
	if !errors.Is(err, service.ErrNotSolved) {
		t.Errorf("GetPlan() before solve error = %v, want %v", err, service.ErrNotSolved)
	}

	if _, err := svc.Solve(ctx, info.ID, "", false); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	// Default options return the whole 12-step plan in order
	plan, err := svc.GetPlan(ctx, info.ID, service.PlanOptions{})
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if plan.TotalSteps != 12 {
		t.Errorf("TotalSteps = %d, want 12", plan.TotalSteps)
	}
	if len(plan.Steps) != 12 {
		t.Errorf("page holds %d steps, want 12", len(plan.Steps))
	}
	if plan.Steps[0].Index != 0 {
		t.Errorf("first step index = %d, want 0", plan.Steps[0].Index)
	}

	// Pagination
	page1, err := svc.GetPlan(ctx, info.ID, service.PlanOptions{Page: 1, Limit: 5})
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if len(page1.Steps) != 5 || page1.TotalPages != 3 {
		t.Errorf("page 1: %d steps across %d pages, want 5 across 3", len(page1.Steps), page1.TotalPages)
	}
	if !page1.HasNext || page1.HasPrevious {
		t.Errorf("page 1 navigation: next=%v previous=%v", page1.HasNext, page1.HasPrevious)
	}

	page3, err := svc.GetPlan(ctx, info.ID, service.PlanOptions{Page: 3, Limit: 5})
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if len(page3.Steps) != 2 || page3.HasNext {
		t.Errorf("page 3: %d steps, next=%v, want 2 steps and no next", len(page3.Steps), page3.HasNext)
	}

	// Descending order puts the goal first
	desc, err := svc.GetPlan(ctx, info.ID, service.PlanOptions{Order: "desc"})
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if desc.Steps[0].Index != 11 {
		t.Errorf("descending first step index = %d, want 11", desc.Steps[0].Index)
	}

	// Unknown session
	if _, err := svc.GetPlan(ctx, "nonexistent", service.PlanOptions{}); err == nil {
		t.Error("GetPlan() with unknown session should fail")
	}
}

func TestSolverService_ListSessions(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "classic")
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}

	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
}

func TestSolverService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("GetSession() after delete should fail")
	}
}

func TestSolverService_ProgressEvents(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	notifier := &RecordingNotifier{}
	svc := service.NewSolverServiceWithNotifier(sessions, scenarios, notifier)

	info, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	outcome, err := svc.Solve(ctx, info.ID, "", false)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !outcome.Solved {
		t.Fatal("Solve() found no plan")
	}

	counts := notifier.typeCounts()
	if counts["node_popped"] == 0 {
		t.Error("no node_popped events recorded")
	}
	if counts["child_discovered"] == 0 {
		t.Error("no child_discovered events recorded")
	}
	if counts["goal_reached"] != 1 {
		t.Errorf("goal_reached events = %d, want 1", counts["goal_reached"])
	}
	if counts["solve_finished"] != 1 {
		t.Errorf("solve_finished events = %d, want 1", counts["solve_finished"])
	}

	last := notifier.events[len(notifier.events)-1]
	if last.Type != "solve_finished" {
		t.Errorf("last event type = %q, want solve_finished", last.Type)
	}
	if last.Message != "Solved in 11 crossings" {
		t.Errorf("finish message = %q, want %q", last.Message, "Solved in 11 crossings")
	}
}

func TestSolverService_ListScenarios(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	scenarios := NewMockScenarioCatalog()
	svc := service.NewSolverService(sessions, scenarios)

	list, err := svc.ListScenarios(ctx)
	if err != nil {
		t.Fatalf("ListScenarios() error = %v", err)
	}
	if len(list) != 4 {
		t.Errorf("ListScenarios() returned %d scenarios, want 4", len(list))
	}
}
