// Package mcp provides Model Context Protocol server implementation for the Ferryman solver.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for solver operations
//   - Thin-client proxying to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_scenarios: List available solver scenarios
//   - describe_scenario: Show a scenario's puzzle and parameters
//   - create_session: Create new solve session with scenario selection
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - delete_session: Delete a solve session
//   - solve: Run the search for a session's scenario
//   - get_outcome: Get the stored outcome of the latest solve
//   - get_plan: Retrieve the solution plan with pagination
//   - solver_instructions: Get comprehensive solver instructions
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The client holds no solver state of its own. Every tool call is
// proxied to the REST API server, so sessions created over MCP are
// visible over HTTP and vice versa.
//
// Usage:
//
//	// Stdio mode
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	response := client.GetMCPServer().HandleMessage(ctx, body)
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Pick a scenario and run the solver autonomously
//   - Compare search strategies across scenarios
//   - Walk through solution plans step by step
//   - Manage multiple solve sessions
//   - Interpret search statistics
package mcp
