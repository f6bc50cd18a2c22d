package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivercrossing/ferryman/solve/scenario"
	"github.com/rivercrossing/ferryman/solve/service"
)

// FilePersistence stores each session as one <id>.json file inside its
// directory.
type FilePersistence struct {
	dir string
}

// NewFilePersistence ensures dir exists and returns a store over it.
func NewFilePersistence(dir string) (*FilePersistence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{dir: dir}, nil
}

// Save writes the session, scenario included, so the file alone can
// restore it later.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data, err := json.MarshalIndent(PersistedSessionData{
		ID:             session.ID,
		Scenario:       session.Scenario,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Outcome:        session.Outcome,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.path(session.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads one session back. A file without a runnable scenario is
// rejected rather than restored half-broken.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	raw, err := os.ReadFile(fp.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.Scenario == nil {
		return nil, fmt.Errorf("session file has no scenario")
	}
	if err := scenario.Validate(data.Scenario); err != nil {
		return nil, fmt.Errorf("persisted scenario is invalid: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Scenario:       data.Scenario,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
		Outcome:        data.Outcome,
	}, nil
}

// Delete removes the session file.
func (fp *FilePersistence) Delete(id string) error {
	err := os.Remove(fp.path(id))
	if os.IsNotExist(err) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns the ID of every session file in the directory.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Exists reports whether a file for id is present.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.path(id))
	return err == nil
}

func (fp *FilePersistence) path(id string) string {
	return filepath.Join(fp.dir, id+".json")
}
