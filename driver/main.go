// Command driver exercises a running solver server end to end. It creates a
// session for every scenario the server advertises (or a single named one),
// runs the solve, walks the paginated plan, and cross-checks the numbers the
// API reports against each other. Exit status 0 means every scenario behaved.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Solver server URL")
	scenarioID := flag.String("scenario", "", "Drive a single scenario by ID (default: every advertised scenario)")
	pageLimit := flag.Int("page-limit", 5, "Plan page size used when walking the plan")
	keep := flag.Bool("keep", false, "Keep sessions on the server after the run")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between scenarios in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to solver server at %s", *serverURL)
	client := NewClient(*serverURL)

	scenarios, err := client.ListScenarios()
	if err != nil {
		log.Fatalf("Failed to list scenarios: %v", err)
	}

	if *scenarioID != "" {
		var picked []ScenarioInfo
		for _, sc := range scenarios {
			if sc.ScenarioID == *scenarioID {
				picked = append(picked, sc)
			}
		}
		if len(picked) == 0 {
			log.Fatalf("Scenario %q is not advertised by the server", *scenarioID)
		}
		scenarios = picked
	}

	log.Printf("📋 %d scenario(s) to drive", len(scenarios))

	failures := 0
	for i, sc := range scenarios {
		log.Printf("\n=== ⛵ Scenario %d/%d: %s ===", i+1, len(scenarios), sc.ScenarioID)
		if err := driveScenario(client, sc, *pageLimit, *keep, *verbose); err != nil {
			log.Printf("❌ %s: %v", sc.ScenarioID, err)
			failures++
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	if failures > 0 {
		log.Printf("\n❌ %d of %d scenarios failed", failures, len(scenarios))
		os.Exit(1)
	}

	log.Printf("\n🎉 All %d scenarios behaved", len(scenarios))
}

// driveScenario runs one scenario through the whole API surface: create,
// solve, read the plan back page by page, delete.
func driveScenario(client *Client, sc ScenarioInfo, pageLimit int, keep, verbose bool) error {
	session, err := client.CreateSession(sc.ScenarioID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	log.Printf("✨ Session created: %s (scenario: %s)", session.ID, session.ScenarioName)

	if !keep {
		defer func() {
			if err := client.DeleteSession(session.ID); err != nil {
				log.Printf("⚠️  Failed to delete session %s: %v", session.ID, err)
			}
		}()
	}

	outcome, err := client.Solve(session.ID)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	if !outcome.Solved {
		log.Printf("⚠️  No solution (strategy %s, %d nodes expanded, %d ms)",
			outcome.Strategy, outcome.Stats.Expanded, outcome.ElapsedMS)

		// No solution is an answer, not a failure. The plan endpoint
		// must refuse cleanly though.
		if _, err := client.GetPlanPage(session.ID, 1, pageLimit); err == nil {
			return fmt.Errorf("plan available for a session without a solution")
		}
		return nil
	}

	log.Printf("✅ Solved in %d crossings (strategy %s, %d expanded, %d ms)",
		outcome.Crossings, outcome.Strategy, outcome.Stats.Expanded, outcome.ElapsedMS)

	steps, err := walkPlan(client, session.ID, pageLimit, verbose)
	if err != nil {
		return fmt.Errorf("walk plan: %w", err)
	}

	// The rendered plan must agree with the outcome: one step per
	// crossing plus the initial configuration.
	if len(steps) != outcome.Crossings+1 {
		return fmt.Errorf("plan has %d steps, outcome promises %d crossings", len(steps), outcome.Crossings)
	}
	if steps[0].Action != "" {
		return fmt.Errorf("first step carries action %q, want none", steps[0].Action)
	}
	for i, step := range steps {
		if step.Index != i {
			return fmt.Errorf("step %d carries index %d", i, step.Index)
		}
		if i > 0 && step.Action == "" {
			return fmt.Errorf("step %d carries no action", i)
		}
	}

	log.Printf("✅ Plan verified: %d steps across %d-step pages", len(steps), pageLimit)
	return nil
}

// walkPlan collects every step of the plan in root-to-goal order by
// following has_next until the last page.
func walkPlan(client *Client, sessionID string, limit int, verbose bool) ([]PlanStep, error) {
	var steps []PlanStep
	page := 1

	for {
		resp, err := client.GetPlanPage(sessionID, page, limit)
		if err != nil {
			return nil, err
		}

		if resp.Page != page {
			return nil, fmt.Errorf("asked for page %d, got page %d", page, resp.Page)
		}

		if verbose {
			for _, step := range resp.Steps {
				if step.Action == "" {
					log.Printf("  %d. (start) %s", step.Index, step.State)
				} else {
					log.Printf("  %d. %s %s", step.Index, step.Action, step.State)
				}
			}
		}

		steps = append(steps, resp.Steps...)

		if !resp.HasNext {
			if len(steps) != resp.TotalSteps {
				return nil, fmt.Errorf("collected %d steps, server promises %d", len(steps), resp.TotalSteps)
			}
			return steps, nil
		}

		page++
		if page > resp.TotalPages {
			return nil, fmt.Errorf("has_next set past the last page %d", resp.TotalPages)
		}
	}
}
