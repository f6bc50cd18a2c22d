package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Manager handles scenario loading and caching
type Manager struct {
	scenarioDir     string
	defaultScenario *scenario.Scenario
	scenarios       map[string]*scenario.Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager
func NewManager(scenarioDir string) (*Manager, error) {
	// Ensure scenario directory exists
	if _, err := os.Stat(scenarioDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory does not exist: %s", scenarioDir)
	}

	m := &Manager{
		scenarioDir: scenarioDir,
		scenarios:   make(map[string]*scenario.Scenario),
	}

	// Load default scenario
	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// Load loads a scenario by name
func (m *Manager) Load(name string) (*scenario.Scenario, error) {
	m.mu.RLock()
	// Check cache first
	if sc, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return sc, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if sc, exists := m.scenarios[name]; exists {
		return sc, nil
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	scenarioPath := filepath.Join(m.scenarioDir, filename)

	// Read scenario file
	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse scenario
	var sc scenario.Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	// Validate scenario
	if err := scenario.Validate(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	// Cache the scenario
	m.scenarios[name] = &sc
	return &sc, nil
}

// List returns information about all available scenarios
func (m *Manager) List() ([]*service.ScenarioInfo, error) {
	entries, err := os.ReadDir(m.scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var scenarios []*service.ScenarioInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Remove .json extension for scenario name
		name := strings.TrimSuffix(entry.Name(), ".json")

		// Try to load the scenario to get details
		sc, err := m.Load(name)
		if err != nil {
			// Skip invalid scenarios
			continue
		}

		scenarios = append(scenarios, &service.ScenarioInfo{
			Filename:    entry.Name(),
			ScenarioID:  name, // This is the identifier to use for session creation
			Name:        sc.Name,
			Description: sc.Description,
			Puzzle:      sc.Puzzle,
			Strategy:    sc.Strategy,
		})
	}

	return scenarios, nil
}

// GetDefault returns the default scenario
func (m *Manager) GetDefault() *scenario.Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by name
func (m *Manager) SetDefault(name string) error {
	sc, err := m.Load(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = sc
	return nil
}

// RefreshCache reloads all cached scenarios from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*scenario.Scenario)
	m.mu.Unlock()

	// Reload default scenario without holding the lock, Load takes it
	return m.loadDefaultScenario()
}

// loadDefaultScenario loads the default scenario
func (m *Manager) loadDefaultScenario() error {
	// Try to load classic.json as default
	sc, err := m.Load("classic")
	if err != nil {
		// Try to load the first available scenario
		scenarios, listErr := m.List()
		if listErr != nil || len(scenarios) == 0 {
			// Create a minimal default scenario
			m.setDefault(m.createMinimalScenario())
			return nil
		}

		// Use the first available scenario
		sc, err = m.Load(strings.TrimSuffix(scenarios[0].Filename, ".json"))
		if err != nil {
			m.setDefault(m.createMinimalScenario())
			return nil
		}
	}

	m.setDefault(sc)
	return nil
}

func (m *Manager) setDefault(sc *scenario.Scenario) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = sc
}

// Save saves a scenario to disk
func (m *Manager) Save(name string, sc *scenario.Scenario) error {
	// Validate scenario before saving
	if err := scenario.Validate(sc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	// Add .json extension if not present
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	scenarioPath := filepath.Join(m.scenarioDir, filename)

	// Marshal scenario to JSON with indentation
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	// Write to file
	if err := os.WriteFile(scenarioPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.scenarios[name] = sc
	m.mu.Unlock()

	return nil
}

// createMinimalScenario creates a minimal valid scenario
func (m *Manager) createMinimalScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name:        "default",
		Description: "Default minimal scenario",
		Puzzle:      scenario.PuzzleHumansZombies,
		HumansZombies: &humanszombies.Config{
			Humans:       3,
			Zombies:      3,
			BoatCapacity: 2,
		},
	}
}
