package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds how often Create redraws a generated ID that
// collides with a live session.
const maxIDAttempts = 16

// Manager owns the in-memory session table and, optionally, the backing
// store sessions are mirrored to. IDs are case-insensitive: the table
// is keyed by the lowercased form while each session keeps the ID it
// was created with.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*service.Session
	persistence SessionPersistence
}

// NewManager creates a manager without a backing store.
func NewManager() *Manager {
	return NewManagerWithPersistence(nil)
}

// NewManagerWithPersistence creates a manager that mirrors session
// changes to the given store.
func NewManagerWithPersistence(p SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: p,
	}
}

// tableKey normalizes an ID for table lookups.
func tableKey(id string) string {
	return strings.ToLower(id)
}

// validSessionID reports whether a caller-chosen ID is usable as a
// table key and as a persistence file name. Generated IDs always
// qualify.
func validSessionID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// Create registers a new session for the scenario. An empty id asks
// for a generated one. The scenario is validated here so a session can
// always be handed to the solver as-is.
func (m *Manager) Create(id string, sc *scenario.Scenario) (*service.Session, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}
	if err := scenario.Validate(sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		generated, err := m.freeGeneratedID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else {
		if !validSessionID(id) {
			return nil, ErrInvalidSessionID
		}
		if m.sessionExists(id) {
			return nil, ErrSessionAlreadyExists
		}
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Scenario:       sc,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[tableKey(id)] = sess

	m.persist(sess)

	return sess, nil
}

// Get returns the session for id, falling back to the backing store
// when it is not in memory. Loaded sessions are cached.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[tableKey(id)]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		sess, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		m.sessions[tableKey(id)] = sess
		m.mu.Unlock()

		return sess, nil
	}

	return nil, ErrSessionNotFound
}

// GetOrCreate returns the existing session for id or creates one.
func (m *Manager) GetOrCreate(id string, sc *scenario.Scenario) (*service.Session, error) {
	sess, err := m.Get(id)
	if err == nil {
		return sess, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, sc)
	}
	return nil, err
}

// List returns every session currently in memory.
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session from memory and from the backing store.
// It reports ErrSessionNotFound only when neither knew the ID.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := tableKey(id)
	_, inMemory := m.sessions[key]
	delete(m.sessions, key)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory drops a session from the table without touching the
// backing store. The filesystem sync loop uses it when a session file
// disappears underneath us.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := tableKey(id)
	if _, ok := m.sessions[key]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	return nil
}

// UpdateLastAccessed stamps the session and mirrors the change.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[tableKey(id)]
	if !ok {
		return ErrSessionNotFound
	}

	sess.LastAccessedAt = time.Now()
	m.persist(sess)
	return nil
}

// Save writes a single session through to the backing store.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sess, ok := m.sessions[tableKey(id)]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	return m.persistence.Save(sess)
}

// CleanupExpiredSessions evicts sessions whose last access is older
// than maxAge and returns how many were removed. Only the in-memory
// table is touched; a persisted session comes back on the next Get.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for key, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, key)
			removed++
		}
	}
	return removed
}

// Count returns the number of sessions in memory.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions fills the table from the backing store,
// skipping IDs already in memory. Unreadable files are reported and
// left behind rather than aborting the whole restore.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	restored := 0
	for _, id := range ids {
		if m.sessionExists(id) {
			continue
		}
		sess, err := m.persistence.Load(id)
		if err != nil {
			fmt.Printf("Warning: Failed to load persisted session %s: %v\n", id, err)
			continue
		}
		m.sessions[tableKey(id)] = sess
		restored++
	}

	if restored > 0 {
		fmt.Printf("Restored %d persisted sessions\n", restored)
	}
	return nil
}

// SaveAllSessions writes every in-memory session through to the
// backing store. Individual failures are reported and counted instead
// of stopping the sweep.
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	snapshot := m.List()

	failed := 0
	for _, sess := range snapshot {
		if err := m.persistence.Save(sess); err != nil {
			fmt.Printf("Warning: Failed to save session %s: %v\n", sess.ID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}

// persist mirrors one session to the backing store. Mirror failures
// are reported, not returned: the in-memory session stays usable.
func (m *Manager) persist(sess *service.Session) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(sess); err != nil {
		fmt.Printf("Warning: Failed to persist session %s: %v\n", sess.ID, err)
	}
}

// freeGeneratedID draws generated IDs until one is unused. Two random
// bytes give 65536 possible IDs, so a redraw is rare until the table
// gets absurdly full. Callers must hold the write lock.
func (m *Manager) freeGeneratedID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := m.generateSessionID()
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free session ID after %d attempts", maxIDAttempts)
}

// generateSessionID returns a random 4-hex-character ID.
func (m *Manager) generateSessionID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// sessionExists reports whether the table holds id. Callers must hold
// at least a read lock.
func (m *Manager) sessionExists(id string) bool {
	_, ok := m.sessions[tableKey(id)]
	return ok
}
