// Package websocket provides the live-progress WebSocket transport for
// the river crossing solver.
//
// The websocket package implements:
//   - Real-time streaming of search progress events
//   - Session-aware WebSocket connections
//   - Outcome broadcasting when a solve completes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. All broadcasts
// flow through the hub's event loop, so callers never touch connection
// state directly.
//
// Message Protocol:
//
// Messages are JSON-encoded and flow server to client only:
//   - Progress: {session_id: "ab12", event: "node_popped", data: {...}}
//   - Outcome:  {session_id: "ab12", event: "outcome_update", outcome: {...}}
//
// Clients never send actions over the socket. A solve is started through
// the HTTP or MCP transports and watched here.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session
// ID via query parameter (?session=ab12) when establishing the connection.
// Events are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	svc := service.NewSolverServiceWithNotifier(sessions, scenarios, websocket.NewNotifier(hub))
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives progress events as the solver explores
// 4. Final outcome broadcast when the solve finishes
// 5. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive events
// simultaneously without blocking each other.
package websocket
