package session

import (
	"time"

	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
)

// SessionPersistence is the storage contract the Manager mirrors
// sessions through. IDs are opaque to implementations.
type SessionPersistence interface {
	// Save writes or overwrites one session.
	Save(session *service.Session) error

	// Load restores one session by ID.
	Load(id string) (*service.Session, error)

	// Delete removes one session from storage.
	Delete(id string) error

	// ListAll returns every stored session ID.
	ListAll() ([]string, error)

	// Exists reports whether a session is stored under id.
	Exists(id string) bool
}

// PersistedSessionData is the JSON layout of a stored session. The
// scenario is stored inline so a session survives catalog edits.
type PersistedSessionData struct {
	ID             string                `json:"id"`
	Scenario       *scenario.Scenario    `json:"scenario"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	Outcome        *service.SolveOutcome `json:"outcome,omitempty"`
}
