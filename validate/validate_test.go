package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateScenario_ValidScenario(t *testing.T) {
	// Create a valid test scenario
	validScenario := `{
		"name": "Test Crossing",
		"description": "Three of each, boat for two",
		"puzzle": "humans-and-zombies",
		"strategy": "bfs",
		"humans_zombies": {
			"humans": 3,
			"zombies": 3,
			"boat_capacity": 2
		}
	}`

	// Write to temp file
	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(validScenario)); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if !result.Valid {
		t.Errorf("Expected valid scenario, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(tmpfile.Name()) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(tmpfile.Name()), result.File)
	}

	found := false
	for _, info := range result.Errors {
		if contains(info, "State space upper bound: 32 states") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected state space bound of 32 states, got: %v", result.Errors)
	}
}

func TestValidateScenario_InvalidJSON(t *testing.T) {
	// Create invalid JSON
	invalidJSON := `{"name": "test", invalid json}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(invalidJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to bad JSON")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Invalid JSON") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidateScenario_MissingFile(t *testing.T) {
	result := validateScenario("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Failed to read file") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateScenario_MissingFields(t *testing.T) {
	// Name and description both missing; both errors should accumulate
	scenarioJSON := `{
		"puzzle": "humans-and-zombies",
		"humans_zombies": {"humans": 3, "zombies": 3, "boat_capacity": 2}
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to missing fields")
	}

	foundName := false
	foundDescription := false
	for _, err := range result.Errors {
		if contains(err, "Missing required field: name") {
			foundName = true
		}
		if contains(err, "Missing required field: description") {
			foundDescription = true
		}
	}
	if !foundName {
		t.Error("Expected 'Missing required field: name' error")
	}
	if !foundDescription {
		t.Error("Expected 'Missing required field: description' error")
	}
}

func TestValidateScenario_UnknownStrategy(t *testing.T) {
	scenarioJSON := `{
		"name": "Test",
		"description": "Test",
		"puzzle": "humans-and-zombies",
		"strategy": "ucs",
		"humans_zombies": {"humans": 3, "zombies": 3, "boat_capacity": 2}
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to unknown strategy")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Invalid strategy") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid strategy' error")
	}
}

func TestValidateScenario_UnknownPuzzle(t *testing.T) {
	scenarioJSON := `{
		"name": "Test",
		"description": "Test",
		"puzzle": "towers-of-hanoi"
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to unknown puzzle")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Unknown puzzle") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Unknown puzzle' error")
	}
}

func TestValidateScenario_MissingSection(t *testing.T) {
	scenarioJSON := `{
		"name": "Test",
		"description": "Test",
		"puzzle": "wolf-goat-cabbage"
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to missing puzzle section")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "requires the wolf_goat_cabbage section") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected missing-section error")
	}
}

func TestValidateScenario_MultipleSections(t *testing.T) {
	scenarioJSON := `{
		"name": "Test",
		"description": "Test",
		"puzzle": "humans-and-zombies",
		"humans_zombies": {"humans": 3, "zombies": 3, "boat_capacity": 2},
		"wolf_goat_cabbage": {"farmers": 1, "wolves": 1, "goats": 1, "cabbages": 1, "boat_capacity": 2}
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to multiple puzzle sections")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Exactly one puzzle section") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Exactly one puzzle section' error")
	}
}

func TestValidateScenario_BadParameters(t *testing.T) {
	scenarioJSON := `{
		"name": "Test",
		"description": "Test",
		"puzzle": "humans-and-zombies",
		"humans_zombies": {"humans": -1, "zombies": 3, "boat_capacity": 2}
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid scenario due to negative humans")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "humans_zombies:") && contains(err, "humans must be between") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected humans_zombies parameter error, got: %v", result.Errors)
	}
}

func TestValidateScenario_DoomedBoatIsValidWithWarning(t *testing.T) {
	// Unsolvable is not invalid: the solver reports "no solution" as an answer
	scenarioJSON := `{
		"name": "Hopeless",
		"description": "Nobody fits in the boat",
		"puzzle": "humans-and-zombies",
		"humans_zombies": {"humans": 3, "zombies": 3, "boat_capacity": 0}
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if !result.Valid {
		t.Errorf("Expected doomed scenario to stay valid, got errors: %v", result.Errors)
	}

	found := false
	for _, line := range result.Errors {
		if contains(line, "Zero-capacity boat") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected zero-capacity boat warning, got: %v", result.Errors)
	}
}

func TestValidateScenario_TorchFuelWarning(t *testing.T) {
	scenarioJSON := `{
		"name": "Short Torch",
		"description": "The slowest walker is stranded",
		"puzzle": "bridge-and-torch",
		"bridge_and_torch": {"walking_times": [1, 2, 5, 8], "torch_fuel": 6, "bridge_capacity": 2}
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(scenarioJSON))
	tmpfile.Close()

	result := validateScenario(tmpfile.Name())
	if !result.Valid {
		t.Errorf("Expected scenario to stay valid, got errors: %v", result.Errors)
	}

	found := false
	for _, line := range result.Errors {
		if contains(line, "less than the slowest walking time 8") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected torch fuel warning, got: %v", result.Errors)
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
