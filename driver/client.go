package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Wire types mirrored from the server API. Only the fields the driver
// inspects are declared; unknown fields are ignored on decode.

type ScenarioInfo struct {
	ScenarioID  string `json:"scenario_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Puzzle      string `json:"puzzle"`
	Strategy    string `json:"strategy,omitempty"`
}

type SessionInfo struct {
	ID           string `json:"id"`
	ScenarioName string `json:"scenario_name"`
}

type SearchStats struct {
	Expanded     int `json:"expanded"`
	Generated    int `json:"generated"`
	Duplicates   int `json:"duplicates"`
	DeadEnds     int `json:"dead_ends"`
	PeakFrontier int `json:"peak_frontier"`
}

type SolveOutcome struct {
	Solved    bool        `json:"solved"`
	Strategy  string      `json:"strategy"`
	Crossings int         `json:"crossings"`
	Stats     SearchStats `json:"stats"`
	ElapsedMS int64       `json:"elapsed_ms"`
}

type PlanStep struct {
	Index  int    `json:"index"`
	Action string `json:"action,omitempty"`
	State  string `json:"state"`
}

type PlanResponse struct {
	Steps       []PlanStep `json:"steps"`
	TotalSteps  int        `json:"total_steps"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	TotalPages  int        `json:"total_pages"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) ListScenarios() ([]ScenarioInfo, error) {
	resp, err := c.client.Get(c.baseURL + "/api/scenarios")
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list scenarios failed: %s - %s", resp.Status, string(body))
	}

	var scenarios []ScenarioInfo
	if err := json.Unmarshal(body, &scenarios); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}

	return scenarios, nil
}

func (c *Client) CreateSession(scenarioID string) (*SessionInfo, error) {
	var reqBody []byte
	var err error

	if scenarioID != "" {
		reqBody, err = json.Marshal(map[string]string{"scenario_id": scenarioID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionInfo
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	return &session, nil
}

func (c *Client) Solve(sessionID string) (*SolveOutcome, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/solve", c.baseURL, sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solve failed: %s - %s", resp.Status, string(body))
	}

	var outcome SolveOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		return nil, fmt.Errorf("parse outcome: %w", err)
	}

	return &outcome, nil
}

func (c *Client) GetPlanPage(sessionID string, page, limit int) (*PlanResponse, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/plan?page=%d&limit=%d&order=asc",
		c.baseURL, sessionID, page, limit)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get plan failed: %s - %s", resp.Status, string(body))
	}

	var plan PlanResponse
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	return &plan, nil
}

func (c *Client) DeleteSession(sessionID string) error {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, sessionID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete session failed: %s - %s", resp.Status, string(body))
	}

	return nil
}
