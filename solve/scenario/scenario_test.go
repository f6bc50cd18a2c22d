package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rivercrossing/ferryman/puzzle/bridgetorch"
	"github.com/rivercrossing/ferryman/puzzle/humanszombies"
	"github.com/rivercrossing/ferryman/puzzle/wolfgoatcabbage"
	"github.com/rivercrossing/ferryman/search"
)

func createValidScenario() *Scenario {
	return &Scenario{
		Name:        "Test Scenario",
		Description: "A valid test scenario",
		Puzzle:      PuzzleHumansZombies,
		Strategy:    "bfs",
		HumansZombies: &humanszombies.Config{
			Humans:       3,
			Zombies:      3,
			BoatCapacity: 2,
		},
	}
}

func TestValidate_ValidScenario(t *testing.T) {
	tests := []struct {
		name     string
		scenario *Scenario
	}{
		{"humans and zombies", createValidScenario()},
		{
			"wolf goat cabbage",
			&Scenario{
				Name:        "Test Scenario",
				Description: "A valid test scenario",
				Puzzle:      PuzzleWolfGoatCabbage,
				WolfGoatCabbage: &wolfgoatcabbage.Config{
					Farmers: 1, Wolves: 1, Goats: 1, Cabbages: 1, BoatCapacity: 2,
				},
			},
		},
		{
			"bridge and torch",
			&Scenario{
				Name:        "Test Scenario",
				Description: "A valid test scenario",
				Puzzle:      PuzzleBridgeTorch,
				Strategy:    "dfs",
				MaxNodes:    1000,
				BridgeTorch: &bridgetorch.Config{
					WalkingTimes: []int{1, 2, 5, 8}, TorchFuel: 15, BridgeCapacity: 2,
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := Validate(test.scenario); err != nil {
				t.Errorf("Expected valid scenario to pass validation, got: %v", err)
			}
		})
	}
}

func TestValidate_MissingName(t *testing.T) {
	sc := createValidScenario()
	sc.Name = ""
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for missing name")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Expected name validation error, got: %v", err)
	}
}

func TestValidate_MissingDescription(t *testing.T) {
	sc := createValidScenario()
	sc.Description = ""
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for missing description")
	}
	if !strings.Contains(err.Error(), "description is required") {
		t.Errorf("Expected description validation error, got: %v", err)
	}
}

func TestValidate_UnknownPuzzle(t *testing.T) {
	sc := createValidScenario()
	sc.Puzzle = "tower-of-hanoi"
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for unknown puzzle")
	}
	if !strings.Contains(err.Error(), "unknown puzzle") {
		t.Errorf("Expected unknown puzzle error, got: %v", err)
	}
}

func TestValidate_MissingSection(t *testing.T) {
	sc := createValidScenario()
	sc.HumansZombies = nil
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for missing puzzle section")
	}
	if !strings.Contains(err.Error(), "requires the humans_zombies section") {
		t.Errorf("Expected missing section error, got: %v", err)
	}
}

func TestValidate_MultipleSections(t *testing.T) {
	sc := createValidScenario()
	sc.WolfGoatCabbage = &wolfgoatcabbage.Config{Farmers: 1, Wolves: 1, Goats: 1, Cabbages: 1, BoatCapacity: 2}
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for multiple puzzle sections")
	}
	if !strings.Contains(err.Error(), "exactly one puzzle section") {
		t.Errorf("Expected section count error, got: %v", err)
	}
}

func TestValidate_BadStrategy(t *testing.T) {
	sc := createValidScenario()
	sc.Strategy = "best-first"
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for unknown strategy")
	}
	if !strings.Contains(err.Error(), "unknown strategy") {
		t.Errorf("Expected strategy validation error, got: %v", err)
	}
}

func TestValidate_NegativeMaxNodes(t *testing.T) {
	sc := createValidScenario()
	sc.MaxNodes = -1
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for negative max_nodes")
	}
	if !strings.Contains(err.Error(), "max_nodes must not be negative") {
		t.Errorf("Expected max_nodes validation error, got: %v", err)
	}
}

func TestValidate_PuzzleBounds(t *testing.T) {
	sc := createValidScenario()
	sc.HumansZombies.Humans = 256
	err := Validate(sc)
	if err == nil {
		t.Error("Expected error for out-of-range puzzle parameter")
	}
	if !strings.Contains(err.Error(), "humans_zombies") {
		t.Errorf("Expected nested puzzle validation error, got: %v", err)
	}
}

func TestOrder(t *testing.T) {
	sc := createValidScenario()

	order, err := sc.Order()
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if order != search.FIFO {
		t.Errorf("Order() = %v, want FIFO", order)
	}

	sc.Strategy = "dfs"
	order, err = sc.Order()
	if err != nil {
		t.Fatalf("Order() error = %v", err)
	}
	if order != search.LIFO {
		t.Errorf("Order() = %v, want LIFO", order)
	}
}

const testScenarioJSON = `{
	"name": "Test Scenario",
	"description": "Test description",
	"puzzle": "humans-and-zombies",
	"strategy": "bfs",
	"humans_zombies": {
		"humans": 3,
		"zombies": 3,
		"boat_capacity": 2
	}
}`

func TestLoadByName(t *testing.T) {
	tempDir := t.TempDir()

	// Change to temp directory temporarily
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	os.MkdirAll("scenarios", 0755)

	err := os.WriteFile(filepath.Join("scenarios", "test.json"), []byte(testScenarioJSON), 0644)
	if err != nil {
		t.Fatalf("Failed to create test scenario file: %v", err)
	}

	// Test loading by name without extension
	sc, err := LoadByName("test")
	if err != nil {
		t.Fatalf("Failed to load scenario by name: %v", err)
	}
	if sc.Name != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got '%s'", sc.Name)
	}
	if sc.HumansZombies == nil || sc.HumansZombies.Humans != 3 {
		t.Errorf("Expected humans_zombies section with 3 humans, got %+v", sc.HumansZombies)
	}

	// Test loading by name with extension
	sc2, err := LoadByName("test.json")
	if err != nil {
		t.Fatalf("Failed to load scenario by name with extension: %v", err)
	}
	if sc2.Name != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got '%s'", sc2.Name)
	}

	// Test loading non-existent scenario
	_, err = LoadByName("nonexistent")
	if err == nil {
		t.Error("Expected error for non-existent scenario")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected 'not found' error, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "test_scenario.json")

	err := os.WriteFile(tempFile, []byte(testScenarioJSON), 0644)
	if err != nil {
		t.Fatalf("Failed to create test scenario file: %v", err)
	}

	sc, err := Load(tempFile)
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}
	if sc.Name != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got '%s'", sc.Name)
	}
	if sc.Puzzle != PuzzleHumansZombies {
		t.Errorf("Expected puzzle '%s', got '%s'", PuzzleHumansZombies, sc.Puzzle)
	}

	// Test loading non-existent file
	_, err = Load("nonexistent.json")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoad_InvalidScenario(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "bad_scenario.json")

	badJSON := `{
		"name": "Bad Scenario",
		"description": "Missing its puzzle section",
		"puzzle": "bridge-and-torch"
	}`
	if err := os.WriteFile(tempFile, []byte(badJSON), 0644); err != nil {
		t.Fatalf("Failed to create test scenario file: %v", err)
	}

	_, err := Load(tempFile)
	if err == nil {
		t.Error("Expected error for scenario without its puzzle section")
	}
	if !strings.Contains(err.Error(), "requires the bridge_and_torch section") {
		t.Errorf("Expected missing section error, got: %v", err)
	}
}
