package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the persisted login state.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// SessionStore persists a session between runs. Load reports found=false
// when no session exists, which is not an error.
type SessionStore interface {
	Save(session Session) error
	Load() (session Session, found bool, err error)
	Clear() error
}

// FileSessionStore keeps the session as a JSON file, created with owner
// only permissions because it contains the token.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (store *FileSessionStore) Save(session Session) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(store.path, encoded, 0o600)
}

func (store *FileSessionStore) Load() (Session, bool, error) {
	raw, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, false, err
	}
	if session.Token == "" {
		return Session{}, false, nil
	}
	return session, true, nil
}

func (store *FileSessionStore) Clear() error {
	err := os.Remove(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemorySessionStore holds the session in memory, used by tests and by
// callers that do not want persistence.
type MemorySessionStore struct {
	session Session
	set     bool
}

func (store *MemorySessionStore) Save(session Session) error {
	store.session = session
	store.set = true
	return nil
}

func (store *MemorySessionStore) Load() (Session, bool, error) {
	if !store.set || store.session.Token == "" {
		return Session{}, false, nil
	}
	return store.session, true, nil
}

func (store *MemorySessionStore) Clear() error {
	store.session = Session{}
	store.set = false
	return nil
}
