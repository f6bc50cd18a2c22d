// Package api provides HTTP REST API handlers for the river crossing solver.
//
// The api package implements:
//   - RESTful endpoints for solver operations
//   - Session management endpoints
//   - Scenario listing, inspection, and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort, order, limit)
//   - GET /api/sessions/unified - Combined view of several sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Solver Operations:
//   - POST /api/sessions/{id}/solve - Run the search and store the outcome
//   - GET /api/sessions/{id}/outcome - Get the stored outcome
//   - GET /api/sessions/{id}/plan - Get the solution plan with pagination
//
// Scenarios:
//   - GET /api/scenarios - List available scenarios
//   - POST /api/scenarios - Create a new scenario
//   - GET /api/scenarios/{name} - Get a specific scenario
//
// Health:
//   - GET /api/health - Liveness probe
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Session creation takes the
// scenario in the POST body, either as a catalog reference or as a
// complete inline scenario:
//
//	{
//	  "scenario_id": "classic"
//	}
//
// The solve body is optional; strategy overrides the scenario's search
// strategy for this run, and force re-runs a session that already has
// an outcome:
//
//	{
//	  "strategy": "dfs",
//	  "force": true
//	}
//
// Plan pagination is driven by query parameters:
//
//	GET /api/sessions/ab12/plan?page=2&limit=10&order=asc
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	server := api.NewServer(solverService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

//
// Solve Response (POST /api/sessions/{id}/solve)
//   Response:
//     - solved, strategy, crossings, elapsed_ms, solved_at
//     - plan: [{ index, action?, state }] // step 0 is the initial state and carries no action
//     - stats: { expanded, generated, duplicates, dead_ends, peak_frontier }
//   The outcome is also broadcast to WebSocket clients watching the session.
//
// Plan Response (GET /api/sessions/{id}/plan)
//   Response:
//     - steps: [{ index, action?, state }]
//     - total_steps, page, page_size, total_pages, has_next, has_previous
