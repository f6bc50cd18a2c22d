package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ferryman River Crossing Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ferryman River Crossing Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

SOLVER OBJECTIVE:
Plan how to ferry everyone across a river (or a night-time bridge) without
breaking the puzzle's safety rules. The solver searches the state space for
you and reports the plan it found.

AVAILABLE TOOLS:
- list_scenarios: List available scenarios
- describe_scenario: Show a scenario's puzzle and parameters
- create_session: Create a new solve session
- list_sessions: List all active sessions
- get_session: Get session details
- solve: Run the search for a session - requires intent explanation
- get_outcome: Get the stored outcome of the latest solve
- get_plan: Page through the solution plan
- delete_session: Delete a session
- solver_instructions: Get comprehensive solver instructions

NOTE: The 'intent' parameter on the solve tool serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Scenario discovery
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List available solver scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListScenarios)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_scenario",
		Description: "Show a scenario's puzzle, parameters, and search settings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario identifier as returned by list_scenarios",
				},
			},
			Required: []string{"scenario_id"},
		},
	}, c.handleDescribeScenario)

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new solve session with optional scenario selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario to solve (optional, defaults to the classic crossing)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active solve sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a solve session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Solver operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Run the search for a session's scenario and report the plan",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"bfs", "dfs"},
					"description": "Override the scenario's search strategy for this run (optional)",
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "Re-run the search even if the session already has an outcome",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are solving this scenario (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_outcome",
		Description: "Get the stored outcome of the most recent solve",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetOutcome)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_plan",
		Description: "Page through the solution plan of a solved session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Steps per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Step order: asc (root first) or desc (goal first)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetPlan)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get comprehensive solver instructions and puzzle rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var scenarios []service.ScenarioInfo
	err := c.apiCall("GET", "/api/scenarios", nil, &scenarios)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Scenarios:\n\n"
	for _, sc := range scenarios {
		result += fmt.Sprintf("• %s\n  %s\n  Puzzle: %s, Strategy: %s\n\n",
			sc.ScenarioID, sc.Description, sc.Puzzle, strategyOrDefault(sc.Strategy))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	scenarioID, _ := args["scenario_id"].(string)

	var sc scenario.Scenario
	err := c.apiCall("GET", fmt.Sprintf("/api/scenarios/%s", scenarioID), nil, &sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScenario(&sc)), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	scenarioID, _ := args["scenario_id"].(string)

	body := map[string]string{}
	if scenarioID != "" {
		body["scenario_id"] = scenarioID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nScenario: %s\n\nUse the solve tool to run the search.",
		session.ID, session.ScenarioName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "not solved"
		if s.Outcome != nil {
			if s.Outcome.Solved {
				status = fmt.Sprintf("solved in %d crossings", s.Outcome.Crossings)
			} else {
				status = "no solution"
			}
		}
		result += fmt.Sprintf("- %s (Scenario: %s, Created: %s, %s)\n",
			s.ID, s.ScenarioName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	strategy, _ := args["strategy"].(string)
	force, _ := args["force"].(bool)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	var body interface{}
	if strategy != "" || force {
		payload := map[string]interface{}{}
		if strategy != "" {
			payload["strategy"] = strategy
		}
		if force {
			payload["force"] = true
		}
		body = payload
	}

	var outcome service.SolveOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/solve", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOutcome(&outcome)), nil
}

func (c *Client) handleGetOutcome(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var outcome service.SolveOutcome
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/outcome", sessionID), nil, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOutcome(&outcome)), nil
}

func (c *Client) handleGetPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params += fmt.Sprintf("order=%s&", order)
	}

	var plan service.PlanResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/plan%s", sessionID, params), nil, &plan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlan(&plan)), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `⛵ Ferryman River Crossing Solver - Complete Instructions

SOLVER OBJECTIVE:
Find a sequence of crossings that moves everyone from the starting side to
the far side without ever violating the puzzle's safety rules. The solver
explores the state space exhaustively, so if a plan exists it will be found.

WORKFLOW:
1. list_scenarios - see what puzzles are on offer
2. describe_scenario - inspect a scenario's parameters before committing
3. create_session - bind a scenario to a fresh session ID
4. solve - run the search (explain your intent!)
5. get_plan - page through the crossing plan step by step
6. get_outcome - re-read the stored result at any time

THE PUZZLES:

• humans-and-zombies
  Humans and zombies stand on the left bank with one boat. The boat needs
  at least one occupant to cross. If zombies ever outnumber humans on
  either bank (while at least one human is there), the humans are eaten.
  Goal: everyone on the right bank.

• wolf-goat-cabbage
  A farmer must ferry a wolf, a goat, and a cabbage. Only the farmer can
  row. Left unattended, the wolf eats the goat and the goat eats the
  cabbage. Goal: everything on the far bank, nothing eaten.

• bridge-and-torch
  People with different walking speeds cross a bridge at night sharing one
  torch. The bridge holds a limited number at once, a group walks at the
  pace of its slowest member, and the torch must accompany every crossing.
  The torch has limited fuel. Goal: everyone across before it burns out.

SEARCH STRATEGIES:
• bfs (default) - breadth-first, always finds a shortest plan
• dfs - depth-first, finds some plan, often quicker but usually longer

The strategy comes from the scenario definition, but the solve tool can
override it per run. Duplicate states are pruned via fingerprints, so
searches terminate even on cyclic spaces.

READING THE STATS:
• expanded: states popped and expanded from the frontier
• generated: candidate states produced by applying moves
• duplicates: candidates dropped because their fingerprint was seen before
• dead_ends: states whose every move led to an already-seen state
• peak_frontier: largest number of states awaiting expansion at once

A solved outcome also reports "crossings" - the number of moves in the
plan, which for bfs is provably minimal.

UNSOLVABLE SCENARIOS:
Some scenarios have no solution (a zero-capacity boat, too many zombies).
The solver reports "No solution found" after exhausting the reachable
space. That is an answer, not an error.

SESSION MANAGEMENT:
- Multiple solve sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions keep their outcome until deleted, so get_plan works any time
- Solving again returns the stored outcome; pass force to re-run

Happy ferrying! ⛵`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func strategyOrDefault(strategy string) string {
	if strategy == "" {
		return "bfs"
	}
	return strategy
}

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Session: %s\nScenario: %s\nCreated: %s\n",
		session.ID, session.ScenarioName,
		session.CreatedAt.Format("2006-01-02 15:04:05")))
	if session.Scenario != nil {
		b.WriteString(fmt.Sprintf("Puzzle: %s\n", session.Scenario.Puzzle))
	}

	if session.Outcome != nil {
		b.WriteString("\n")
		b.WriteString(formatOutcome(session.Outcome))
	} else {
		b.WriteString("\nNot solved yet. Use the solve tool to run the search.")
	}
	return b.String()
}

func formatOutcome(outcome *service.SolveOutcome) string {
	var b strings.Builder

	if outcome.Solved {
		b.WriteString(fmt.Sprintf("✓ Solved in %d crossings (strategy: %s, %d ms)\n",
			outcome.Crossings, outcome.Strategy, outcome.ElapsedMS))
	} else {
		b.WriteString(fmt.Sprintf("✗ No solution found (strategy: %s, %d ms)\n",
			outcome.Strategy, outcome.ElapsedMS))
	}
	b.WriteString(fmt.Sprintf("Expanded: %d | Generated: %d | Duplicates: %d | Dead ends: %d | Peak frontier: %d\n",
		outcome.Stats.Expanded, outcome.Stats.Generated, outcome.Stats.Duplicates,
		outcome.Stats.DeadEnds, outcome.Stats.PeakFrontier))

	if outcome.Solved && len(outcome.Plan) > 0 {
		b.WriteString("\nPlan:\n")
		for _, step := range outcome.Plan {
			if step.Action != "" {
				b.WriteString(step.Action + "\n")
			}
			b.WriteString(step.State + "\n")
		}
	}

	return b.String()
}

func formatPlan(plan *service.PlanResponse) string {
	result := fmt.Sprintf("Solution Plan (Page %d/%d) — Total steps: %d\n\n",
		plan.Page, plan.TotalPages, plan.TotalSteps)

	for _, step := range plan.Steps {
		if step.Action != "" {
			result += fmt.Sprintf("%d. %s\n   %s\n", step.Index, strings.TrimSpace(step.Action), step.State)
		} else {
			result += fmt.Sprintf("%d. (start)\n   %s\n", step.Index, step.State)
		}
	}

	if plan.HasNext {
		result += fmt.Sprintf("\nMore steps available: request page %d.\n", plan.Page+1)
	}

	return result
}

func formatScenario(sc *scenario.Scenario) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Scenario: %s\n%s\n\nPuzzle: %s\nStrategy: %s\n",
		sc.Name, sc.Description, sc.Puzzle, strategyOrDefault(sc.Strategy)))
	if sc.MaxNodes > 0 {
		b.WriteString(fmt.Sprintf("Node budget: %d\n", sc.MaxNodes))
	}

	switch {
	case sc.HumansZombies != nil:
		cfg := sc.HumansZombies
		b.WriteString(fmt.Sprintf("Parameters: %d humans, %d zombies, boat capacity %d\n",
			cfg.Humans, cfg.Zombies, cfg.BoatCapacity))
	case sc.WolfGoatCabbage != nil:
		cfg := sc.WolfGoatCabbage
		b.WriteString(fmt.Sprintf("Parameters: %d farmers, %d wolves, %d goats, %d cabbages, boat capacity %d\n",
			cfg.Farmers, cfg.Wolves, cfg.Goats, cfg.Cabbages, cfg.BoatCapacity))
	case sc.BridgeTorch != nil:
		cfg := sc.BridgeTorch
		b.WriteString(fmt.Sprintf("Parameters: walking times %v, torch fuel %d, bridge capacity %d\n",
			cfg.WalkingTimes, cfg.TorchFuel, cfg.BridgeCapacity))
	}

	return b.String()
}
