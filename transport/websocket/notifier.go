package websocket

import (
	"github.com/rivercrossing/ferryman/solve/service"
)

// Notifier adapts a Hub to the solver's progress interface. Wiring one
// into the solver service streams every search event to the WebSocket
// clients watching that session.
type Notifier struct {
	hub *Hub
}

// NewNotifier creates a progress notifier backed by the given hub
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// NotifyProgress broadcasts a search progress event to the session's clients
func (n *Notifier) NotifyProgress(sessionID string, event service.ProgressEvent) {
	n.hub.BroadcastEvent(sessionID, event.Type, event)
}
