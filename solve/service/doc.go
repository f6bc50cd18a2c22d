// Package service provides the business logic layer for the river
// crossing solver.
//
// The service package implements:
//   - Multi-session solve management
//   - Scenario loading and listing
//   - Search dispatch per puzzle type
//   - Plan rendering and pagination
//   - Progress notification fan-out
//
// Core Interfaces:
//
// SolverService is the main service interface providing high-level
// solver operations. SessionManager handles session creation,
// retrieval, and lifecycle. ScenarioCatalog manages scenario loading
// and validation. ProgressNotifier receives search progress events for
// live transports.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/
// MCP) and the search engine, providing session isolation, scenario
// management, and business logic orchestration. Each session holds one
// scenario and the outcome of its most recent solve.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	scenarioMgr, _ := catalog.NewManager("scenarios")
//	solver := service.NewSolverService(sessionMgr, scenarioMgr)
//
//	// Create a new session
//	info, err := solver.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Run the search
//	outcome, err := solver.Solve(ctx, info.ID, "", false)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs. Multiple sessions
// can run concurrently with different scenarios. Sessions track
// creation time, last access time, and the latest solve outcome. A
// solved session keeps its outcome until a caller forces a re-run.
package service
